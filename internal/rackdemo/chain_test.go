package rackdemo

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rack/internal/testutil"
	"github.com/cwbudde/algo-rack/rack"
)

var demoConfig = Config{
	DelayTimeMs: 100,
	Feedback:    0.3,
	Mix:         0.5,
	ReverbTime:  0.5,
	Gain:        1,
}

func TestNewChainValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewChain(rack.Context{SampleRate: 0}, demoConfig); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewChain(rack.Context{SampleRate: 48000}, demoConfig); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChainRenderIsFinite(t *testing.T) {
	t.Parallel()

	chain, err := NewChain(rack.Context{SampleRate: 48000}, demoConfig)
	if err != nil {
		t.Fatal(err)
	}

	in := rack.Bus{testutil.Impulse(4096, 0)}
	out := rack.NewBus(2, 4096)

	chain.Render(in, out)

	for _, ch := range out {
		testutil.RequireFinite(t, ch)
	}
}

func TestChainImpulseLeavesTail(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000

	chain, err := NewChain(rack.Context{SampleRate: sampleRate}, demoConfig)
	if err != nil {
		t.Fatal(err)
	}

	// Feed an impulse, then silence: the delay and reverb must keep
	// producing energy well after the input has gone quiet.
	frames := sampleRate / 2
	in := rack.Bus{testutil.Impulse(frames, 0)}
	out := rack.NewBus(2, frames)

	chain.Render(in, out)

	var tail float64
	for _, v := range out.Channel(0)[sampleRate/4:] {
		tail += v * v
	}

	if tail == 0 {
		t.Error("expected delay/reverb tail energy after the impulse")
	}
}

func TestChainGainZeroSilences(t *testing.T) {
	t.Parallel()

	cfg := demoConfig
	cfg.Gain = 0

	chain, err := NewChain(rack.Context{SampleRate: 48000}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	in := rack.Bus{testutil.Ones(256)}
	out := rack.NewBus(2, 256)

	chain.Render(in, out)

	for c, ch := range out {
		for i, v := range ch {
			if v != 0 {
				t.Fatalf("channel %d frame %d = %g, want silence at gain 0", c, i, v)
			}
		}
	}
}

func TestChainBlockSizeInvariance(t *testing.T) {
	t.Parallel()

	const (
		sampleRate = 48000
		frames     = 512
		block      = 64
	)

	input := testutil.DeterministicSine(440, sampleRate, 0.5, frames)
	input[0] = 1

	whole, err := NewChain(rack.Context{SampleRate: sampleRate}, demoConfig)
	if err != nil {
		t.Fatal(err)
	}

	outWhole := rack.NewBus(2, frames)
	whole.Render(rack.Bus{input}, outWhole)

	split, err := NewChain(rack.Context{SampleRate: sampleRate}, demoConfig)
	if err != nil {
		t.Fatal(err)
	}

	outSplit := rack.NewBus(2, frames)
	for off := 0; off < frames; off += block {
		in := rack.Bus{input[off : off+block]}
		out := rack.Bus{
			outSplit[0][off : off+block],
			outSplit[1][off : off+block],
		}
		split.Render(in, out)
	}

	// Node state carries across block boundaries, so the block size must
	// not change a single sample.
	for c := 0; c < 2; c++ {
		testutil.RequireSliceNearlyEqual(t, outSplit[c], outWhole[c], 0)
	}
}

func TestChainShortFinalBlock(t *testing.T) {
	t.Parallel()

	chain, err := NewChain(rack.Context{SampleRate: 48000}, demoConfig)
	if err != nil {
		t.Fatal(err)
	}

	full := rack.Bus{testutil.Ones(128)}
	out := rack.NewBus(2, 128)
	chain.Render(full, out)

	// A trailing block shorter than the scratch size must reuse it.
	shortIn := rack.Bus{testutil.Ones(37)}
	shortOut := rack.NewBus(2, 37)
	chain.Render(shortIn, shortOut)

	for _, ch := range shortOut {
		testutil.RequireFinite(t, ch)
		if math.Abs(ch[0]) == 0 {
			t.Error("short block produced no signal")
		}
	}
}

func BenchmarkChainRender(b *testing.B) {
	chain, err := NewChain(rack.Context{SampleRate: 48000}, demoConfig)
	if err != nil {
		b.Fatal(err)
	}

	const frames = 512

	in := rack.Bus{testutil.DeterministicSine(440, 48000, 0.5, frames)}
	out := rack.NewBus(2, frames)

	b.SetBytes(2 * frames * 8)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		chain.Render(in, out)
	}
}
