// Package modulation provides reusable non-I/O modulation sources.
//
// Included processors:
//   - LFO: Phase-accumulator control oscillator with sine, triangle, ramp
//     and square shapes, exponential-FM control voltage and edge-triggered
//     sync reset.
package modulation
