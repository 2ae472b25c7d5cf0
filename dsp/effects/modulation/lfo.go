package modulation

import (
	"fmt"
	"math"
)

// Shape selects the LFO waveform.
type Shape int

const (
	// ShapeSine produces sin(2*pi*phase).
	ShapeSine Shape = iota
	// ShapeTriangle rises from -1 to +1 over the first half cycle and back.
	ShapeTriangle
	// ShapeRamp rises linearly from -1 to +1 once per cycle.
	ShapeRamp
	// ShapeSquare is +1 for the first half cycle and -1 for the second.
	ShapeSquare

	numShapes = 4
)

// ShapeFromValue maps a numeric shape selector to a Shape. The value is
// truncated to an integer and clamped into the valid range; NaN selects sine.
func ShapeFromValue(v float64) Shape {
	if math.IsNaN(v) {
		return ShapeSine
	}
	s := int(v)
	if s < 0 {
		s = 0
	}
	if s >= numShapes {
		s = numShapes - 1
	}
	return Shape(s)
}

// String returns a short lower-case name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "sine"
	case ShapeTriangle:
		return "triangle"
	case ShapeRamp:
		return "ramp"
	case ShapeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// LFOParams holds the controls applied on a single LFO tick. Callers may
// vary every field per sample; the LFO itself keeps no parameter state.
type LFOParams struct {
	RateHz  float64
	Depth   float64
	Offset  float64
	Shape   Shape
	Bipolar bool
}

// LFO is a low-frequency control oscillator: a phase accumulator in [0, 1)
// driving four waveform generators, with exponential FM via a rate control
// voltage and edge-triggered phase reset via a sync input.
type LFO struct {
	sampleRate float64
	phase      float64
	prevSync   float64
}

// NewLFO creates an LFO for the given sample rate, starting at phase 0.
func NewLFO(sampleRate float64) (*LFO, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0: %f", sampleRate)
	}
	return &LFO{sampleRate: sampleRate}, nil
}

// ProcessSample generates one control sample.
//
// The output is produced from the current phase, then the phase moves on:
// a rising edge on syncIn (current >= 0.5, previous < 0.5) resets the phase
// to 0 in place of this tick's advance, so the reset becomes audible on the
// following sample and a held-high sync does not re-trigger. Otherwise the
// phase advances by rate*2^rateCV / sampleRate, wrapping into [0, 1). A
// non-finite or negative effective rate freezes the phase for this tick.
// The final sample is hard-clamped to [-1, 1].
func (l *LFO) ProcessSample(rateCV, syncIn float64, p LFOParams) float64 {
	wave := waveSample(p.Shape, l.phase)

	var out float64
	if p.Bipolar {
		out = wave*p.Depth + p.Offset
	} else {
		out = (wave*0.5+0.5)*p.Depth + p.Offset
	}
	if out > 1 {
		out = 1
	} else if out < -1 {
		out = -1
	}

	if syncIn >= 0.5 && l.prevSync < 0.5 {
		l.phase = 0
	} else {
		rate := p.RateHz * mathPower2(rateCV)
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			rate = 0
		}
		l.phase += rate / l.sampleRate
		l.phase -= math.Floor(l.phase)
	}
	l.prevSync = syncIn

	return out
}

// Render fills out with consecutive samples using the same parameters for
// every sample and no CV or sync input.
func (l *LFO) Render(out []float64, p LFOParams) {
	for i := range out {
		out[i] = l.ProcessSample(0, 0, p)
	}
}

// Reset returns the oscillator to phase 0 and clears the sync edge state.
func (l *LFO) Reset() {
	l.phase = 0
	l.prevSync = 0
}

// SampleRate returns sample rate in Hz.
func (l *LFO) SampleRate() float64 { return l.sampleRate }

func waveSample(shape Shape, phase float64) float64 {
	switch shape {
	case ShapeTriangle:
		return 2*math.Abs(2*(phase-math.Floor(phase+0.5))) - 1
	case ShapeRamp:
		return 2 * (phase - 0.5)
	case ShapeSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
