package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-rack/dsp/core"
	"github.com/cwbudde/algo-rack/internal/rackdemo"
	"github.com/cwbudde/algo-rack/rack"
)

const bytesPerFrame = 8 // stereo float32

// chainReader feeds the demo patch to the audio device: every Read pulls
// whole blocks through the chain and serializes them as interleaved
// little-endian float32, returning io.EOF once the duration is spent.
type chainReader struct {
	chain      *rackdemo.Chain
	sampleRate float64
	block      int

	in      rack.Bus
	out     rack.Bus
	inView  rack.Bus
	outView rack.Bus

	frame       int
	totalFrames int

	buf     []byte
	pend    []byte
	pendOff int
}

func newChainReader(chain *rackdemo.Chain, sampleRate float64, block, totalFrames int) *chainReader {
	return &chainReader{
		chain:       chain,
		sampleRate:  sampleRate,
		block:       block,
		in:          rack.NewBus(1, block),
		out:         rack.NewBus(2, block),
		inView:      make(rack.Bus, 1),
		outView:     make(rack.Bus, 2),
		totalFrames: totalFrames,
		buf:         make([]byte, block*bytesPerFrame),
	}
}

func (r *chainReader) Read(p []byte) (int, error) {
	filled := 0
	for filled < len(p) {
		if r.pendOff == len(r.pend) {
			if r.frame >= r.totalFrames {
				if filled == 0 {
					return 0, io.EOF
				}
				return filled, nil
			}
			r.renderBlock()
		}

		n := copy(p[filled:], r.pend[r.pendOff:])
		filled += n
		r.pendOff += n
	}

	return filled, nil
}

func (r *chainReader) renderBlock() {
	n := r.block
	if r.frame+n > r.totalFrames {
		n = r.totalFrames - r.frame
	}

	in := r.in[0][:n]
	for i := range in {
		in[i] = rackdemo.PulseSample(r.sampleRate, r.frame+i)
	}
	r.inView[0] = in
	r.outView[0] = r.out[0][:n]
	r.outView[1] = r.out[1][:n]

	r.chain.Render(r.inView, r.outView)

	buf := r.buf[:n*bytesPerFrame]
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			v := core.Clamp(r.outView[c][i], -1, 1)
			bits := math.Float32bits(float32(v))
			binary.LittleEndian.PutUint32(buf[(i*2+c)*4:], bits)
		}
	}

	r.pend = buf
	r.pendOff = 0
	r.frame += n
}

func main() {
	duration := flag.Float64("duration", 10, "Playback duration in seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Playback sample rate in Hz")
	blockSize := flag.Int("block", 128, "Frames per processing block")
	delayTime := flag.Float64("delay-time", 300, "Delay time in ms")
	feedback := flag.Float64("feedback", 0.3, "Delay feedback (0-0.9)")
	mix := flag.Float64("mix", 0.5, "Delay wet/dry mix (0-1)")
	reverbTime := flag.Float64("reverb-time", 0.5, "Reverb time (0.1-0.98)")
	gain := flag.Float64("gain", 1.0, "Output gain (0-2)")
	flag.Parse()

	if *blockSize < 1 {
		*blockSize = 128
	}
	if *duration <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -duration must be > 0")
		os.Exit(1)
	}

	totalFrames := int(float64(*sampleRate) * *duration)
	if totalFrames < 1 {
		totalFrames = 1
	}

	chain, err := rackdemo.NewChain(rack.Context{SampleRate: float64(*sampleRate)}, rackdemo.Config{
		DelayTimeMs: *delayTime,
		Feedback:    *feedback,
		Mix:         *mix,
		ReverbTime:  *reverbTime,
		Gain:        *gain,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building chain: %v\n", err)
		os.Exit(1)
	}

	reader := newChainReader(chain, float64(*sampleRate), *blockSize, totalFrames)

	op := &oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	<-ready

	player := ctx.NewPlayer(reader)
	player.Play()

	fmt.Printf("Playing %.1f s at %d Hz (block %d)...\n", *duration, *sampleRate, *blockSize)

	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}

	if err := player.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing player: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
