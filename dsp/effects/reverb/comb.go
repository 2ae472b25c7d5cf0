package reverb

import (
	"fmt"
	"math"
)

// Comb is a feedback comb filter with one-pole damping in its recirculation
// path, the resonant building block of the reverberator. Output is the
// buffer value read before the tick's write, one buffer length after the
// sample entered.
type Comb struct {
	buffer      []float64
	index       int
	feedback    float64
	filterStore float64
	damp1       float64
	damp2       float64
}

// NewComb creates a comb filter with the given buffer length in samples.
func NewComb(size int) (*Comb, error) {
	if size < 1 {
		return nil, fmt.Errorf("comb size must be > 0: %d", size)
	}
	c := &Comb{buffer: make([]float64, size)}
	c.SetDamp(0)
	return c, nil
}

// ProcessSample advances the filter by one tick.
func (c *Comb) ProcessSample(input float64) float64 {
	output := c.buffer[c.index]

	c.filterStore = output*c.damp2 + c.filterStore*c.damp1
	if math.Abs(c.filterStore) < 1e-23 {
		c.filterStore = 0
	}

	c.buffer[c.index] = input + c.filterStore*c.feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}

	return output
}

// SetFeedback sets the recirculation gain.
func (c *Comb) SetFeedback(v float64) {
	c.feedback = v
}

// SetDamp sets the one-pole damping coefficient: v weights the filter
// memory and 1-v the fresh sample, so damp 0 recirculates undamped.
func (c *Comb) SetDamp(v float64) {
	c.damp1 = v
	c.damp2 = 1 - v
}

// Len returns buffer length in samples.
func (c *Comb) Len() int {
	return len(c.buffer)
}

// Reset clears buffer contents and filter memory.
func (c *Comb) Reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.index = 0
	c.filterStore = 0
}
