package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rack/dsp/interp"
)

// Line is a fixed-capacity circular delay line.
//
// Capacity is chosen at construction and never changes afterwards, so a
// Line can be written and read from a real-time path without allocating.
// Fractional reads interpolate between neighboring samples; the usable
// delay range is [1, MaxDelay] so the interpolation window never touches
// the slot the next Write will overwrite.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// Option configures a Line at construction time.
type Option func(*Line)

// WithMode selects the interpolation algorithm used by ReadFractional.
// The default is linear.
func WithMode(mode interp.Mode) Option {
	return func(l *Line) {
		l.mode = mode
	}
}

// New returns a delay line with the given capacity in samples.
// Capacity must be at least 4 so fractional reads have a non-empty range.
func New(size int, opts ...Option) (*Line, error) {
	if size < 4 {
		return nil, fmt.Errorf("delay size must be >= 4: %d", size)
	}

	l := &Line{buffer: make([]float64, size), mode: interp.Linear}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l, nil
}

// NewMaxDuration returns a delay line sized so that a fractional delay of
// seconds*sampleRate samples stays within the valid read range.
func NewMaxDuration(seconds, sampleRate float64, opts ...Option) (*Line, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return nil, fmt.Errorf("delay duration must be > 0 and finite: %v", seconds)
	}
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0 and finite: %v", sampleRate)
	}

	size := int(math.Ceil(seconds*sampleRate)) + 2
	if size < 4 {
		size = 4
	}

	return New(size, opts...)
}

// Len returns the capacity in samples.
func (l *Line) Len() int {
	return len(l.buffer)
}

// MaxDelay returns the largest delay ReadFractional supports. It is
// capacity-2 for linear interpolation and capacity-3 for Hermite, whose
// window extends one sample further.
func (l *Line) MaxDelay() float64 {
	if l.mode == interp.Hermite {
		return float64(len(l.buffer) - 3)
	}
	return float64(len(l.buffer) - 2)
}

// Write stores one sample and advances the write cursor.
func (l *Line) Write(sample float64) {
	l.buffer[l.writePos] = sample
	l.writePos++
	if l.writePos >= len(l.buffer) {
		l.writePos = 0
	}
}

// Read returns the sample written delay ticks ago. A delay of 1 is the
// most recently written sample.
func (l *Line) Read(delay int) float64 {
	size := len(l.buffer)
	readPos := (l.writePos - delay + size) % size
	return l.buffer[readPos]
}

// ReadFractional returns the sample at a fractional delay, interpolating
// between neighbors. Delays outside [1, MaxDelay] are clamped, as is NaN.
// A delay with zero fractional part reproduces Read exactly.
func (l *Line) ReadFractional(delay float64) float64 {
	if delay < 1 || math.IsNaN(delay) {
		delay = 1
	}
	if maxDelay := l.MaxDelay(); delay > maxDelay {
		delay = maxDelay
	}

	p := int(delay)
	t := delay - float64(p)

	if l.mode == interp.Hermite {
		return interp.Hermite4(t, l.Read(p-1), l.Read(p), l.Read(p+1), l.Read(p+2))
	}

	return interp.Linear2(t, l.Read(p), l.Read(p+1))
}

// Reset clears line state.
func (l *Line) Reset() {
	for i := range l.buffer {
		l.buffer[i] = 0
	}
	l.writePos = 0
}
