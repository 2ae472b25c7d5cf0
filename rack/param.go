package rack

import (
	"math"

	"github.com/cwbudde/algo-rack/dsp/core"
)

// AutomationRate says how often a parameter may change within a block.
type AutomationRate int

const (
	// RateBlock parameters hold one value for the whole block.
	RateBlock AutomationRate = iota

	// RateSample parameters may carry a value per sample.
	RateSample
)

// String returns a short name for the rate.
func (r AutomationRate) String() string {
	switch r {
	case RateBlock:
		return "block"
	case RateSample:
		return "sample"
	default:
		return "unknown"
	}
}

// ParamSpec is the immutable descriptor of one node parameter,
// declared once per node type.
type ParamSpec struct {
	Name    string
	Default float64
	Min     float64
	Max     float64
	Rate    AutomationRate
}

// Clamp forces v into the spec's bounds. Out-of-range values are
// silently clamped, never surfaced; NaN and Inf collapse to the
// default.
func (s ParamSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return s.Default
	}

	return core.Clamp(v, s.Min, s.Max)
}

// At reads the spec's parameter for sample i from p, clamped to the
// spec's bounds.
func (s ParamSpec) At(p Params, i int) float64 {
	return s.Clamp(p.At(s.Name, i, s.Default))
}

// First reads the spec's block-rate value from p, clamped.
func (s ParamSpec) First(p Params) float64 {
	return s.Clamp(p.First(s.Name, s.Default))
}

// Bool reads the spec's value as a switch: first value >= 0.5 is on.
func (s ParamSpec) Bool(p Params) bool {
	return s.First(p) >= 0.5
}

// Params is the host-supplied parameter set for one block: automation
// slices keyed by parameter name. Slices are read-only for nodes; a
// length of 1 means constant-per-block, the block length means
// per-sample.
type Params map[string][]float64

// At returns the value of name at sample i. Missing parameters return
// def; single-value slices broadcast; slices shorter than the block
// hold their last value. Non-finite values collapse to def.
func (p Params) At(name string, i int, def float64) float64 {
	values := p[name]

	var v float64

	switch {
	case len(values) == 0:
		return def
	case len(values) == 1:
		v = values[0]
	case i < len(values):
		v = values[i]
	default:
		v = values[len(values)-1]
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// First returns the first value of name, or def when absent or
// non-finite. Block-rate parameters are read this way.
func (p Params) First(name string, def float64) float64 {
	return p.At(name, 0, def)
}

// Bool reads name as a switch: the first value >= 0.5 is on.
func (p Params) Bool(name string, def bool) bool {
	defVal := 0.0
	if def {
		defVal = 1
	}

	return p.First(name, defVal) >= 0.5
}
