// Package effects provides reusable non-I/O DSP effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-rack/dsp/effects/modulation
//   - github.com/cwbudde/algo-rack/dsp/effects/reverb
//
// Effects in this package:
//   - Echo: Stereo feedback delay with tone-controlled damping and an
//     optional ping-pong feedback cross.
//
// All effects are designed for real-time processing with zero-allocation
// hot paths and support both single-sample and buffer-based processing.
package effects
