package rack

// Bus is one signal bus for a single block: channel-major sample data,
// all channels the same length. A nil Bus reads as silence.
type Bus [][]float64

// NewBus allocates a bus with the given channel count and block length.
func NewBus(channels, frames int) Bus {
	if channels <= 0 || frames < 0 {
		return nil
	}

	b := make(Bus, channels)
	for i := range b {
		b[i] = make([]float64, frames)
	}

	return b
}

// Channel returns channel i, or nil when the bus does not carry it.
func (b Bus) Channel(i int) []float64 {
	if i < 0 || i >= len(b) {
		return nil
	}

	return b[i]
}

// ChannelOrFirst returns channel i, falling back to channel 0 when
// channel i is absent. This is how a mono bus feeds both sides of a
// stereo consumer.
func (b Bus) ChannelOrFirst(i int) []float64 {
	if ch := b.Channel(i); ch != nil {
		return ch
	}

	return b.Channel(0)
}

// Frames returns the block length of the bus.
func (b Bus) Frames() int {
	if len(b) == 0 {
		return 0
	}

	return len(b[0])
}

// Zero clears every channel.
func (b Bus) Zero() {
	for _, ch := range b {
		for i := range ch {
			ch[i] = 0
		}
	}
}
