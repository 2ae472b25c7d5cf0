package modulation

import (
	"math"
	"testing"
)

func TestNewLFOValidation(t *testing.T) {
	for _, rate := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if _, err := NewLFO(rate); err == nil {
			t.Fatalf("expected error for sample rate %v", rate)
		}
	}
}

func TestLFOSineStartsAtZero(t *testing.T) {
	l, err := NewLFO(48000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	got := l.ProcessSample(0, 0, LFOParams{RateHz: 2, Depth: 1, Shape: ShapeSine, Bipolar: true})
	if got != 0 {
		t.Fatalf("sine at phase 0: got %g want 0", got)
	}
}

// TestLFOSquareFlipsAtHalfCycle renders one full cycle of a 1 Hz bipolar
// square at 48 kHz and verifies +1 for the first half second and -1 for the
// second, with one sample of slack at the flip for phase accumulation
// rounding.
func TestLFOSquareFlipsAtHalfCycle(t *testing.T) {
	const (
		sampleRate = 48000.0
		half       = 24000
	)

	l, err := NewLFO(sampleRate)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	p := LFOParams{RateHz: 1, Depth: 1, Shape: ShapeSquare, Bipolar: true}

	for i := 0; i < 2*half; i++ {
		got := l.ProcessSample(0, 0, p)
		if i == half {
			continue
		}

		want := 1.0
		if i > half {
			want = -1
		}
		if got != want {
			t.Fatalf("sample %d: got %g want %g", i, got, want)
		}
	}
}

// TestLFOWaveformGrids steps the phase in exact quarter-cycle increments
// (rate 250 Hz at 1 kHz) and checks each waveform against its closed form.
func TestLFOWaveformGrids(t *testing.T) {
	cases := []struct {
		shape Shape
		want  []float64
	}{
		{shape: ShapeTriangle, want: []float64{-1, 0, 1, 0, -1}},
		{shape: ShapeRamp, want: []float64{-1, -0.5, 0, 0.5, -1}},
		{shape: ShapeSquare, want: []float64{1, 1, -1, -1, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.shape.String(), func(t *testing.T) {
			l, err := NewLFO(1000)
			if err != nil {
				t.Fatalf("NewLFO: %v", err)
			}

			p := LFOParams{RateHz: 250, Depth: 1, Shape: tc.shape, Bipolar: true}
			for i, want := range tc.want {
				got := l.ProcessSample(0, 0, p)
				if math.Abs(got-want) > 1e-12 {
					t.Fatalf("sample %d: got %g want %g", i, got, want)
				}
			}
		})
	}
}

// TestLFOSyncRisingEdgeResets drives the sync input through a rise, a hold
// and a second rise. The phase must restart on the sample after each rising
// edge and must not re-trigger while sync stays high.
func TestLFOSyncRisingEdgeResets(t *testing.T) {
	l, err := NewLFO(1000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	p := LFOParams{RateHz: 100, Depth: 1, Shape: ShapeSine, Bipolar: true}
	sync := []float64{0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 1, 1}

	out := make([]float64, len(sync))
	for i, s := range sync {
		out[i] = l.ProcessSample(0, s, p)
	}

	// Edge on sample 5: phase 0 is generated on sample 6.
	if math.Abs(out[6]) > 1e-12 {
		t.Fatalf("sample after edge: got %g want 0", out[6])
	}

	// Sync held high: the phase keeps advancing instead of re-triggering.
	if math.Abs(out[7]) < 0.5 {
		t.Fatalf("held-high sync re-triggered: got %g", out[7])
	}

	// Second rising edge on sample 10 resets again.
	if math.Abs(out[11]) > 1e-12 {
		t.Fatalf("sample after second edge: got %g want 0", out[11])
	}
}

// TestLFOExponentialFMDoublesRate verifies that a +1 control voltage is
// exactly one octave up: an LFO at rate r with cv=1 tracks an LFO at 2r.
func TestLFOExponentialFMDoublesRate(t *testing.T) {
	a, err := NewLFO(48000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}
	b, err := NewLFO(48000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	pa := LFOParams{RateHz: 5, Depth: 1, Shape: ShapeSine, Bipolar: true}
	pb := LFOParams{RateHz: 10, Depth: 1, Shape: ShapeSine, Bipolar: true}

	for i := 0; i < 200; i++ {
		got := a.ProcessSample(1, 0, pa)
		want := b.ProcessSample(0, 0, pb)
		if got != want {
			t.Fatalf("sample %d: cv path %g, doubled rate %g", i, got, want)
		}
	}
}

// TestLFOInvalidRateFreezes feeds rates and control voltages whose product
// is non-finite or negative; the oscillator must hold its phase instead of
// erroring out.
func TestLFOInvalidRateFreezes(t *testing.T) {
	cases := []struct {
		name   string
		rateHz float64
		cv     float64
	}{
		{name: "nan rate", rateHz: math.NaN(), cv: 0},
		{name: "negative rate", rateHz: -5, cv: 0},
		{name: "inf cv", rateHz: 2, cv: math.Inf(1)},
		{name: "nan cv", rateHz: 2, cv: math.NaN()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewLFO(1000)
			if err != nil {
				t.Fatalf("NewLFO: %v", err)
			}

			p := LFOParams{RateHz: tc.rateHz, Depth: 1, Shape: ShapeRamp, Bipolar: true}
			for i := 0; i < 10; i++ {
				// Phase frozen at 0, so the ramp stays at -1.
				if got := l.ProcessSample(tc.cv, 0, p); got != -1 {
					t.Fatalf("sample %d: got %g want -1", i, got)
				}
			}
		})
	}
}

func TestLFOUnipolarRange(t *testing.T) {
	l, err := NewLFO(1000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	p := LFOParams{RateHz: 250, Depth: 1, Shape: ShapeTriangle}

	// Quarter-cycle grid: triangle -1, 0, +1 maps to 0, 0.5, 1.
	want := []float64{0, 0.5, 1}
	for i, w := range want {
		got := l.ProcessSample(0, 0, p)
		if math.Abs(got-w) > 1e-12 {
			t.Fatalf("sample %d: got %g want %g", i, got, w)
		}
	}
}

func TestLFOOutputHardClamped(t *testing.T) {
	l, err := NewLFO(1000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	p := LFOParams{RateHz: 250, Depth: 1, Offset: 1, Shape: ShapeSquare, Bipolar: true}

	// +1 with offset +1 would be 2 without the clamp.
	if got := l.ProcessSample(0, 0, p); got != 1 {
		t.Fatalf("got %g want 1", got)
	}

	l.Reset()
	p.Offset = -1
	l.ProcessSample(0, 0, p)
	l.ProcessSample(0, 0, p)
	// Phase 0.5: square at -1 with offset -1 would be -2.
	if got := l.ProcessSample(0, 0, p); got != -1 {
		t.Fatalf("got %g want -1", got)
	}
}

func TestShapeFromValue(t *testing.T) {
	cases := []struct {
		v    float64
		want Shape
	}{
		{v: -1, want: ShapeSine},
		{v: 0, want: ShapeSine},
		{v: 1, want: ShapeTriangle},
		{v: 2, want: ShapeRamp},
		{v: 3, want: ShapeSquare},
		{v: 3.9, want: ShapeSquare},
		{v: 7, want: ShapeSquare},
		{v: math.NaN(), want: ShapeSine},
	}

	for _, tc := range cases {
		if got := ShapeFromValue(tc.v); got != tc.want {
			t.Fatalf("ShapeFromValue(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestShapeString(t *testing.T) {
	names := map[Shape]string{
		ShapeSine:     "sine",
		ShapeTriangle: "triangle",
		ShapeRamp:     "ramp",
		ShapeSquare:   "square",
		Shape(9):      "unknown",
	}
	for shape, want := range names {
		if got := shape.String(); got != want {
			t.Fatalf("Shape(%d).String() = %q, want %q", int(shape), got, want)
		}
	}
}

func TestLFORenderMatchesProcessSample(t *testing.T) {
	l1, err := NewLFO(48000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}
	l2, err := NewLFO(48000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	p := LFOParams{RateHz: 3.7, Depth: 0.8, Offset: 0.1, Shape: ShapeTriangle, Bipolar: true}

	want := make([]float64, 256)
	for i := range want {
		want[i] = l1.ProcessSample(0, 0, p)
	}

	got := make([]float64, 256)
	l2.Render(got, p)

	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got %g want %g", i, got[i], want[i])
		}
	}
}

func TestLFOResetRestoresState(t *testing.T) {
	l, err := NewLFO(48000)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	p := LFOParams{RateHz: 3.7, Depth: 1, Shape: ShapeSine, Bipolar: true}

	first := l.ProcessSample(0, 0, p)
	for i := 0; i < 13; i++ {
		l.ProcessSample(0, 1, p)
	}

	l.Reset()
	if got := l.ProcessSample(0, 0, p); got != first {
		t.Fatalf("after reset: got %g want %g", got, first)
	}
}
