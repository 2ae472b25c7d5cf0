package rack

// DefaultRegistry returns a Registry pre-populated with the built-in
// node types under their fixed identifiers.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("delay", newDelayNode, delaySpecs...)
	r.MustRegister("lfo", newLFONode, lfoSpecs...)
	r.MustRegister("reverb", newReverbNode, reverbSpecs...)
	r.MustRegister("gain", newGainNode, gainSpecs...)

	return r
}
