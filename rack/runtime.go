package rack

// inputBus returns input bus i, or nil when the host wired fewer buses.
func inputBus(inputs []Bus, i int) Bus {
	if i < 0 || i >= len(inputs) {
		return nil
	}

	return inputs[i]
}

// sampleAt reads sample i of a channel, treating nil or short channels
// as silence.
func sampleAt(ch []float64, i int) float64 {
	if i >= len(ch) {
		return 0
	}

	return ch[i]
}
