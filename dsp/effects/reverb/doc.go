// Package reverb provides reusable non-I/O reverb processors.
//
// Included processors:
//   - Reverb: Stereo Schroeder reverberator with per-channel pre-delay and
//     a fixed stereo spread.
//   - Comb, Allpass: The recursive filters the network is built from,
//     exported for direct use.
package reverb
