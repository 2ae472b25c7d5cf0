package rackdemo

import "math"

// PulseSample synthesizes the built-in demo source: a short 220 Hz burst
// every half second, decaying fast enough that the delay repeats stay
// audible between hits. Frame indexes the absolute sample position.
func PulseSample(sampleRate float64, frame int) float64 {
	period := int(sampleRate / 2)
	if period < 1 {
		period = 1
	}

	t := float64(frame%period) / sampleRate
	if t > 0.12 {
		return 0
	}

	carrier := math.Sin(2 * math.Pi * 220 * float64(frame) / sampleRate)

	return 0.8 * carrier * math.Exp(-t/0.04)
}
