package rack

import (
	"math"
	"testing"
)

func TestParamsAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    Params
		key  string
		i    int
		def  float64
		want float64
	}{
		{
			name: "missing key returns default",
			p:    Params{},
			key:  "mix",
			i:    3,
			def:  0.5,
			want: 0.5,
		},
		{
			name: "single value broadcasts to every sample",
			p:    Params{"mix": {0.25}},
			key:  "mix",
			i:    100,
			def:  0.5,
			want: 0.25,
		},
		{
			name: "per-sample value indexes directly",
			p:    Params{"mix": {0.1, 0.2, 0.3}},
			key:  "mix",
			i:    1,
			def:  0.5,
			want: 0.2,
		},
		{
			name: "short slice holds its last value",
			p:    Params{"mix": {0.1, 0.2, 0.3}},
			key:  "mix",
			i:    10,
			def:  0.5,
			want: 0.3,
		},
		{
			name: "NaN collapses to default",
			p:    Params{"mix": {math.NaN()}},
			key:  "mix",
			i:    0,
			def:  0.5,
			want: 0.5,
		},
		{
			name: "Inf collapses to default",
			p:    Params{"mix": {math.Inf(-1)}},
			key:  "mix",
			i:    0,
			def:  0.5,
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.p.At(tt.key, tt.i, tt.def); got != tt.want {
				t.Errorf("At(%q, %d) = %g, want %g", tt.key, tt.i, got, tt.want)
			}
		})
	}
}

func TestParamsFirstAndBool(t *testing.T) {
	t.Parallel()

	p := Params{
		"pingpong": {1},
		"bipolar":  {0.4},
		"rate":     {2, 3, 4},
	}

	if got := p.First("rate", 0); got != 2 {
		t.Errorf("First(rate) = %g, want 2", got)
	}

	if got := p.First("missing", 7); got != 7 {
		t.Errorf("First(missing) = %g, want 7", got)
	}

	if !p.Bool("pingpong", false) {
		t.Error("Bool(pingpong) = false, want true")
	}

	if p.Bool("bipolar", true) {
		t.Error("Bool(bipolar) with 0.4 = true, want false")
	}

	if !p.Bool("absent", true) {
		t.Error("Bool(absent) should fall back to the default")
	}
}

func TestParamSpecClamp(t *testing.T) {
	t.Parallel()

	spec := ParamSpec{Name: "time", Default: 300, Min: 20, Max: 1200, Rate: RateSample}

	tests := []struct {
		in   float64
		want float64
	}{
		{500, 500},
		{5, 20},
		{99999, 1200},
		{math.NaN(), 300},
		{math.Inf(1), 300},
	}

	for _, tt := range tests {
		if got := spec.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func TestParamSpecReads(t *testing.T) {
	t.Parallel()

	spec := ParamSpec{Name: "gain", Default: 1, Min: 0, Max: 2, Rate: RateSample}

	p := Params{"gain": {0.5, 9, -3}}

	if got := spec.At(p, 0); got != 0.5 {
		t.Errorf("At(0) = %g, want 0.5", got)
	}

	if got := spec.At(p, 1); got != 2 {
		t.Errorf("At(1) = %g, want clamp to 2", got)
	}

	if got := spec.At(p, 2); got != 0 {
		t.Errorf("At(2) = %g, want clamp to 0", got)
	}

	if got := spec.At(Params{}, 0); got != 1 {
		t.Errorf("At on empty params = %g, want default 1", got)
	}

	onSpec := ParamSpec{Name: "sw", Default: 1, Min: 0, Max: 1, Rate: RateBlock}
	if !onSpec.Bool(Params{}) {
		t.Error("Bool with default 1 should be true when the parameter is absent")
	}
}

func TestAutomationRateString(t *testing.T) {
	t.Parallel()

	if RateBlock.String() != "block" || RateSample.String() != "sample" {
		t.Errorf("rate names = %q/%q, want block/sample", RateBlock, RateSample)
	}

	if AutomationRate(9).String() != "unknown" {
		t.Errorf("AutomationRate(9) = %q, want unknown", AutomationRate(9))
	}
}
