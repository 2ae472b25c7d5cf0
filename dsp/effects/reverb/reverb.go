package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rack/dsp/core"
	"github.com/cwbudde/algo-rack/dsp/delay"
)

const (
	numCombs     = 4
	numAllpasses = 2

	// Tunings in samples at the 44.1 kHz reference rate.
	combTuning1 = 1116
	combTuning2 = 1188
	combTuning3 = 1277
	combTuning4 = 1356

	allpassTuning1 = 556
	allpassTuning2 = 441

	// stereoSpread is added to the right channel's filter lengths before
	// rate scaling, decorrelating the two tails.
	stereoSpread = 23

	referenceSampleRate = 44100.0

	inputGain = 0.35
	wetGain   = 0.3

	maxPreDelaySeconds = 0.12

	feedbackFloor = 0.2
	feedbackCeil  = 0.98

	defaultReverbTime       = 0.5
	defaultReverbDamp       = 0.5
	defaultReverbPreDelayMs = 0.0
)

// Reverb is a stereo Schroeder reverberator: per channel four comb filters
// in parallel feed two serial allpasses, preceded by a private pre-delay
// line. Filter lengths scale with the sample rate and the right channel's
// lengths carry a fixed spread for stereo decorrelation.
type Reverb struct {
	sampleRate float64

	time       float64
	damp       float64
	preDelayMs float64

	preDelaySamples float64

	left  channelNet
	right channelNet
}

// channelNet is one channel's filter network.
type channelNet struct {
	combs    [numCombs]*Comb
	allpass  [numAllpasses]*Allpass
	preDelay *delay.Line
}

// New creates a stereo reverberator for the given sample rate.
func New(sampleRate float64) (*Reverb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb sample rate must be > 0: %f", sampleRate)
	}

	r := &Reverb{sampleRate: sampleRate}

	scale := sampleRate / referenceSampleRate
	if err := r.left.build(sampleRate, scale, 0); err != nil {
		return nil, err
	}
	if err := r.right.build(sampleRate, scale, stereoSpread); err != nil {
		return nil, err
	}

	r.SetTime(defaultReverbTime)
	r.SetDamp(defaultReverbDamp)
	r.SetPreDelay(defaultReverbPreDelayMs)

	return r, nil
}

func (n *channelNet) build(sampleRate, scale float64, offset int) error {
	combTunings := [numCombs]int{combTuning1, combTuning2, combTuning3, combTuning4}
	for i, base := range combTunings {
		c, err := NewComb(scaledSize(base+offset, scale))
		if err != nil {
			return err
		}
		n.combs[i] = c
	}

	allpassTunings := [numAllpasses]int{allpassTuning1, allpassTuning2}
	for i, base := range allpassTunings {
		a, err := NewAllpass(scaledSize(base+offset, scale))
		if err != nil {
			return err
		}
		n.allpass[i] = a
	}

	pre, err := delay.NewMaxDuration(maxPreDelaySeconds, sampleRate)
	if err != nil {
		return err
	}
	n.preDelay = pre

	return nil
}

func scaledSize(base int, scale float64) int {
	size := int(math.Round(float64(base) * scale))
	if size < 1 {
		size = 1
	}
	return size
}

// SetTime sets the decay control in [0.1, 0.98]. It maps onto the comb
// feedback clamp(0.2 + time*0.78, 0.2, 0.98) applied to all eight combs.
func (r *Reverb) SetTime(v float64) {
	r.time = v
	fb := core.Clamp(0.2+v*0.78, feedbackFloor, feedbackCeil)
	for i := range r.left.combs {
		r.left.combs[i].SetFeedback(fb)
		r.right.combs[i].SetFeedback(fb)
	}
}

// SetDamp sets the high-frequency damping control in [0, 1]. It maps onto
// the comb one-pole coefficient 0.05 + damp*0.9.
func (r *Reverb) SetDamp(v float64) {
	r.damp = v
	coeff := 0.05 + v*0.9
	for i := range r.left.combs {
		r.left.combs[i].SetDamp(coeff)
		r.right.combs[i].SetDamp(coeff)
	}
}

// SetPreDelay sets the pre-delay in milliseconds, clamped to what the
// pre-delay line can realize.
func (r *Reverb) SetPreDelay(ms float64) {
	maxMs := r.left.preDelay.MaxDelay() / r.sampleRate * 1000
	r.preDelayMs = core.Clamp(ms, 0, maxMs)
	r.preDelaySamples = r.preDelayMs * r.sampleRate / 1000
}

// ProcessSample processes one stereo sample pair with a per-sample dry/wet
// mix. The raw input always enters the pre-delay line, so the wet path
// stays primed while mix is 0.
func (r *Reverb) ProcessSample(inL, inR, mix float64) (float64, float64) {
	outL := r.left.processSample(inL, r.preDelaySamples, mix)
	outR := r.right.processSample(inR, r.preDelaySamples, mix)
	return outL, outR
}

func (n *channelNet) processSample(input, preDelaySamples, mix float64) float64 {
	// Below one sample the interpolated read would force a sample of
	// latency, so the network taps the input directly.
	feed := input
	if preDelaySamples >= 1 {
		feed = n.preDelay.ReadFractional(preDelaySamples)
	}
	n.preDelay.Write(input)

	x := feed * inputGain

	var acc float64
	for i := range n.combs {
		acc += n.combs[i].ProcessSample(x)
	}
	for i := range n.allpass {
		acc = n.allpass[i].ProcessSample(acc)
	}

	wet := acc * wetGain

	return input*(1-mix) + wet*mix
}

// ProcessInPlace applies the reverb to left and right in place with a
// constant mix. Samples past the shorter slice are left untouched.
func (r *Reverb) ProcessInPlace(left, right []float64, mix float64) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = r.ProcessSample(left[i], right[i], mix)
	}
}

// Reset clears all delay and filter state.
func (r *Reverb) Reset() {
	r.left.reset()
	r.right.reset()
}

func (n *channelNet) reset() {
	for i := range n.combs {
		n.combs[i].Reset()
	}
	for i := range n.allpass {
		n.allpass[i].Reset()
	}
	n.preDelay.Reset()
}

// SampleRate returns sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// Time returns the decay control value.
func (r *Reverb) Time() float64 { return r.time }

// Damp returns the damping control value.
func (r *Reverb) Damp() float64 { return r.damp }

// PreDelayMs returns the effective pre-delay in milliseconds.
func (r *Reverb) PreDelayMs() float64 { return r.preDelayMs }
