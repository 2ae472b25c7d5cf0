package reverb

import "fmt"

// Allpass disperses phase while preserving the magnitude spectrum. Run in
// series after the comb bank it smears discrete echoes into a dense tail.
type Allpass struct {
	buffer   []float64
	index    int
	feedback float64
}

// NewAllpass creates an allpass filter with the given buffer length in
// samples. Feedback is fixed at 0.5.
func NewAllpass(size int) (*Allpass, error) {
	if size < 1 {
		return nil, fmt.Errorf("allpass size must be > 0: %d", size)
	}
	return &Allpass{buffer: make([]float64, size), feedback: 0.5}, nil
}

// ProcessSample advances the filter by one tick.
func (a *Allpass) ProcessSample(input float64) float64 {
	bufOut := a.buffer[a.index]
	output := bufOut - input

	a.buffer[a.index] = input + bufOut*a.feedback
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}

	return output
}

// Len returns buffer length in samples.
func (a *Allpass) Len() int {
	return len(a.buffer)
}

// Reset clears buffer contents.
func (a *Allpass) Reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.index = 0
}
