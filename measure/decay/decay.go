package decay

import (
	"errors"
	"math"
)

// Errors returned by decay analysis functions.
var (
	ErrEmptyResponse     = errors.New("decay: impulse response is empty")
	ErrInvalidSampleRate = errors.New("decay: sample rate must be positive")
	ErrInvalidFloor      = errors.New("decay: floor must be negative dB")
	ErrNoDecay           = errors.New("decay: insufficient decay for RT calculation")
)

// Metrics holds the decay figures derived from one impulse response.
type Metrics struct {
	// RT60 is the time in seconds for the tail to fall by 60 dB,
	// extrapolated from T30 when available and T20 otherwise.
	RT60 float64

	// EDT is the early decay time: the 0 to -10 dB slope of the
	// Schroeder curve extrapolated to -60 dB.
	EDT float64

	// T20 and T30 are the -5 to -25 dB and -5 to -35 dB slopes
	// extrapolated to -60 dB.
	T20 float64
	T30 float64

	// PeakIndex is the sample index of the absolute maximum.
	PeakIndex int
}

// Analyzer computes decay metrics from impulse responses.
type Analyzer struct {
	// SampleRate of the analyzed responses in Hz.
	SampleRate float64
}

// NewAnalyzer returns an Analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all decay metrics for the given impulse response.
func (a *Analyzer) Analyze(response []float64) (Metrics, error) {
	if len(response) == 0 {
		return Metrics{}, ErrEmptyResponse
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peakIdx := a.findPeak(response)

	// Slopes are fitted on the tail starting at the peak so that
	// pre-delay silence does not flatten the regression.
	schroeder := a.schroederIntegral(response[peakIdx:])

	m := Metrics{
		PeakIndex: peakIdx,
		EDT:       a.decayTime(schroeder, 0, -10),
		T20:       a.decayTime(schroeder, -5, -25),
		T30:       a.decayTime(schroeder, -5, -35),
	}

	// RT60 prefers T30 (more of the curve contributes), falls back to T20.
	if m.T30 > 0 {
		m.RT60 = m.T30
	} else {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 computes the reverberation time alone, preferring the T30
// estimate and falling back to T20 for short responses.
func (a *Analyzer) RT60(response []float64) (float64, error) {
	if len(response) == 0 {
		return 0, ErrEmptyResponse
	}

	if a.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	schroeder := a.schroederIntegral(response)

	if rt := a.decayTime(schroeder, -5, -35); rt > 0 {
		return rt, nil
	}

	if rt := a.decayTime(schroeder, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// SchroederIntegral returns the backward-integrated energy decay curve
// in dB, normalized so the first sample is 0 dB.
func (a *Analyzer) SchroederIntegral(response []float64) ([]float64, error) {
	if len(response) == 0 {
		return nil, ErrEmptyResponse
	}

	return a.schroederIntegral(response), nil
}

// TailLength returns the number of samples up to and including the last
// sample whose magnitude stays within floorDB of the response peak.
// floorDB must be negative (e.g. -60 for the audible tail).
//
// A longer tail length means a slower decay, which makes the value a
// cheap proxy for RT comparisons between two renderings.
func (a *Analyzer) TailLength(response []float64, floorDB float64) (int, error) {
	if len(response) == 0 {
		return 0, ErrEmptyResponse
	}

	if floorDB >= 0 || math.IsNaN(floorDB) {
		return 0, ErrInvalidFloor
	}

	peak := 0.0
	for _, v := range response {
		if av := math.Abs(v); av > peak {
			peak = av
		}
	}

	if peak == 0 {
		return 0, nil
	}

	threshold := peak * math.Pow(10, floorDB/20)
	for i := len(response) - 1; i >= 0; i-- {
		if math.Abs(response[i]) >= threshold {
			return i + 1, nil
		}
	}

	return 0, nil
}

// schroederIntegral computes the normalized backward energy integral in dB.
//
//	E(t) = ∫ₜ^∞ h²(τ)dτ / ∫₀^∞ h²(τ)dτ
func (a *Analyzer) schroederIntegral(response []float64) []float64 {
	n := len(response)
	curve := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += response[i] * response[i]
		curve[i] = cumSum
	}

	totalEnergy := curve[0]
	if totalEnergy <= 0 {
		return curve
	}

	for i := range curve {
		ratio := curve[i] / totalEnergy
		if ratio <= 0 {
			curve[i] = -200 // dB floor, keeps the log finite
		} else {
			curve[i] = 10 * math.Log10(ratio)
		}
	}

	return curve
}

// decayTime fits a line to the Schroeder curve between startDB and
// endDB and extrapolates the slope to -60 dB. Returns 0 when the curve
// never reaches the markers or does not decay.
func (a *Analyzer) decayTime(schroeder []float64, startDB, endDB float64) float64 {
	if len(schroeder) == 0 || a.SampleRate <= 0 {
		return 0
	}

	startIdx := -1
	endIdx := -1

	for i, v := range schroeder {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	// Least-squares slope of the curve between the two markers,
	// x in samples, y in dB.
	n := float64(endIdx - startIdx + 1)

	var sumX, sumY, sumXX, sumXY float64
	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0 // flat or rising: no decay to measure
	}

	rt := -60.0 / (slope * a.SampleRate)
	if rt < 0 {
		return 0
	}

	return rt
}

// findPeak returns the index of the absolute maximum of the response.
func (a *Analyzer) findPeak(response []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range response {
		if av := math.Abs(v); av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}
