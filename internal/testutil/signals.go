// Package testutil provides deterministic signal generators and slice
// assertions shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// ln(10^3): the amplitude ratio of -60 dB.
const ln1000 = 6.907755278982137

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRate)
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude,
// amplitude] from a fixed seed, so runs are reproducible.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// NoiseDecay shapes seeded noise with an exponential envelope reaching
// -60 dB at rt60 seconds: the usual stand-in for a measured
// reverberation tail.
func NoiseDecay(seed int64, rt60, sampleRate float64, length int) []float64 {
	out := DeterministicNoise(seed, 1, length)
	k := ln1000 / rt60
	for i := range out {
		out[i] *= math.Exp(-k * float64(i) / sampleRate)
	}
	return out
}

// Impulse generates a unit impulse at pos; out-of-range positions yield
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns n samples of 1.0.
func Ones(n int) []float64 {
	return DC(1, n)
}
