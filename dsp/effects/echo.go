package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rack/dsp/core"
	"github.com/cwbudde/algo-rack/dsp/delay"
)

const (
	echoMaxTimeSeconds = 2.0

	echoDampFloor = 0.05
	echoDampRange = 0.9
)

// EchoParams holds the controls applied on a single Echo tick. Callers may
// vary every field per sample; Echo itself keeps no parameter state.
//
// Expected ranges: TimeMs within the line's horizon, Feedback in [0, 0.9],
// Mix and Tone in [0, 1]. Values outside these ranges are not rejected here;
// hosts clamp before calling.
type EchoParams struct {
	TimeMs   float64
	Feedback float64
	Mix      float64
	Tone     float64
	PingPong bool
}

// Echo is a stereo feedback delay. Each channel owns one delay line; the
// recirculated signal passes through a one-pole low-pass whose cutoff
// follows Tone, so repeats darken as Tone falls. With PingPong enabled each
// channel feeds back the opposite channel's delayed signal.
type Echo struct {
	sampleRate float64

	lineL *delay.Line
	lineR *delay.Line

	dampStateL float64
	dampStateR float64
}

// NewEcho creates a stereo echo with a 2 s maximum delay horizon.
func NewEcho(sampleRate float64) (*Echo, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("echo sample rate must be > 0: %f", sampleRate)
	}

	lineL, err := delay.NewMaxDuration(echoMaxTimeSeconds, sampleRate)
	if err != nil {
		return nil, err
	}
	lineR, err := delay.NewMaxDuration(echoMaxTimeSeconds, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Echo{sampleRate: sampleRate, lineL: lineL, lineR: lineR}, nil
}

// ProcessSample processes one stereo sample pair.
func (e *Echo) ProcessSample(inL, inR float64, p EchoParams) (float64, float64) {
	delaySamples := p.TimeMs * e.sampleRate / 1000

	delayedL := e.lineL.ReadFractional(delaySamples)
	delayedR := e.lineR.ReadFractional(delaySamples)

	fbL, fbR := delayedL, delayedR
	if p.PingPong {
		fbL, fbR = delayedR, delayedL
	}

	// One-pole low-pass on the recirculated signal only; the first tap
	// stays untouched.
	damp := echoDampFloor + (1-p.Tone)*echoDampRange
	e.dampStateL = core.FlushDenormals(fbL*p.Feedback*(1-damp) + e.dampStateL*damp)
	e.dampStateR = core.FlushDenormals(fbR*p.Feedback*(1-damp) + e.dampStateR*damp)

	e.lineL.Write(inL + e.dampStateL)
	e.lineR.Write(inR + e.dampStateR)

	outL := inL*(1-p.Mix) + delayedL*p.Mix
	outR := inR*(1-p.Mix) + delayedR*p.Mix

	return outL, outR
}

// ProcessInPlace applies the echo to left and right in place, using the
// same parameters for every sample. Samples past the shorter slice are
// left untouched.
func (e *Echo) ProcessInPlace(left, right []float64, p EchoParams) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		left[i], right[i] = e.ProcessSample(left[i], right[i], p)
	}
}

// Reset clears delay history and damping memory.
func (e *Echo) Reset() {
	e.lineL.Reset()
	e.lineR.Reset()
	e.dampStateL = 0
	e.dampStateR = 0
}

// SampleRate returns sample rate in Hz.
func (e *Echo) SampleRate() float64 { return e.sampleRate }

// MaxDelayMs returns the largest delay time the echo can realize.
func (e *Echo) MaxDelayMs() float64 {
	return e.lineL.MaxDelay() / e.sampleRate * 1000
}
