// Package rack defines the block-processing contract that ties the dsp
// kernels into host-driven processing chains.
//
// A host invokes each Node once per fixed-size block with input buses,
// an output bus and a fresh read-only parameter set. Nodes own their
// state exclusively, never block or allocate in the steady state, and
// always ask to continue. Buses are channel-major; a missing input bus
// reads as silence and a mono bus duplicates its channel into stereo
// consumers.
//
// Parameters travel as automation slices: length 1 is
// constant-per-block, the block length is per-sample. Each node type
// declares its surface as ParamSpec descriptors in the Registry; reads
// are silently clamped to the declared bounds.
//
// DefaultRegistry ships the four built-in node types: "delay" (stereo
// ping-pong echo), "lfo" (control oscillator), "reverb" (Schroeder
// network) and "gain" (accelerated gain stage).
package rack
