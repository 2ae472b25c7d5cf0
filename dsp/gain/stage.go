package gain

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/GeoffreyPlitt/debuggo"
)

var gainDebug = debuggo.Debug("rack:gain")

// Stage applies gain and an optional control voltage to audio blocks.
// It prefers a loaded accelerated Module and falls back to a plain Go
// loop whenever no module is available or a call does not fit the
// module's limits. The fallback produces the same samples, so callers
// never need to know which path ran.
type Stage struct {
	sampleRate float64

	module   atomic.Pointer[Module]
	warnOnce sync.Once
}

// StageOption configures NewStage.
type StageOption func(*stageConfig)

type stageConfig struct {
	payload string
	module  *Module
	noAccel bool
}

// WithPayload replaces DefaultPayload as the descriptor the stage
// loads out of band.
func WithPayload(encoded string) StageOption {
	return func(cfg *stageConfig) { cfg.payload = encoded }
}

// WithModule installs an already loaded module, skipping the loader.
func WithModule(m *Module) StageOption {
	return func(cfg *stageConfig) { cfg.module = m }
}

// WithoutAcceleration pins the stage to the fallback path.
func WithoutAcceleration() StageOption {
	return func(cfg *stageConfig) { cfg.noAccel = true }
}

// NewStage creates a gain stage. Unless configured otherwise it starts
// a one-shot loader goroutine for the descriptor payload; rendering is
// valid immediately and switches to the accelerated path once the
// module arrives.
func NewStage(sampleRate float64, opts ...StageOption) (*Stage, error) {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return nil, fmt.Errorf("gain sample rate must be > 0: %f", sampleRate)
	}

	cfg := stageConfig{payload: DefaultPayload}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Stage{sampleRate: sampleRate}

	switch {
	case cfg.noAccel:
		gainDebug("acceleration disabled, fallback only")
	case cfg.module != nil:
		s.module.Store(cfg.module)
	default:
		go s.loadModule(cfg.payload)
	}

	return s, nil
}

// loadModule decodes and validates the payload out of band. There is no
// retry: a bad payload leaves the stage on the fallback path for good,
// unless a module arrives through the same atomic by other means.
func (s *Stage) loadModule(encoded string) {
	m, err := Load(DecodePayload(encoded))
	if err != nil {
		gainDebug("module load failed: %v", err)
		return
	}

	s.module.Store(m)
	gainDebug("module %s ready: simd=%s, block limit %d", m.Name(), m.SIMDLevel(), m.MaxBlock())
}

// RenderBlock fills out with in scaled by gain and the rectified
// control voltage. cv and gain may be empty (unity), single-element
// (block constant), or per-sample; on the fallback path a shorter
// slice holds its last value. Frames beyond the shorter of out and in
// stay untouched.
//
// The path choice happens per call: an accelerated failure (for
// example a block larger than the module's limit) falls back for that
// call only and never disables the module.
func (s *Stage) RenderBlock(out, in, cv, gain []float64) {
	n := min(len(out), len(in))
	if n == 0 {
		return
	}

	if m := s.module.Load(); m != nil {
		res, err := m.Render(in, cv, gain, n)
		if err == nil && len(res) == n {
			copy(out[:n], res)
			return
		}

		s.warnOnce.Do(func() {
			gainDebug("accelerated render unavailable for %d frames, using fallback: %v", n, err)
		})
	}

	renderFallback(out[:n], in[:n], cv, gain)
}

// Ready reports whether the accelerated module has been loaded.
func (s *Stage) Ready() bool {
	return s.module.Load() != nil
}

// SampleRate returns the configured sample rate in Hz.
func (s *Stage) SampleRate() float64 {
	return s.sampleRate
}

func renderFallback(out, in, cv, gain []float64) {
	for i := range out {
		g := paramAt(gain, i, 1)

		c := 1.0
		if len(cv) > 0 {
			c = max(0, paramAt(cv, i, 1))
		}

		out[i] = in[i] * g * c
	}
}

// paramAt reads an automation slice that may be empty, block-constant,
// or per-sample.
func paramAt(values []float64, i int, def float64) float64 {
	switch {
	case len(values) == 0:
		return def
	case i < len(values):
		return values[i]
	default:
		return values[len(values)-1]
	}
}
