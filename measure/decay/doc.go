// Package decay measures how fast the tail of an impulse response dies
// away, for characterizing reverberant and feedback-based processors.
//
// Metrics are derived from the Schroeder backward integration of the
// squared response:
//
//   - RT60: Reverberation time (time for -60 dB decay)
//   - EDT: Early Decay Time (extrapolated from 0 to -10 dB)
//   - T20, T30: Decay time from -5 to -25 dB and -5 to -35 dB
//   - TailLength: samples until the response falls below a dB floor
//
// # Usage
//
//	analyzer := decay.NewAnalyzer(48000) // sample rate
//	metrics, err := analyzer.Analyze(impulseResponse)
//	fmt.Printf("RT60 = %.2f s\n", metrics.RT60)
package decay
