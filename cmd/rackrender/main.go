package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-rack/dsp/core"
	"github.com/cwbudde/algo-rack/internal/rackdemo"
	"github.com/cwbudde/algo-rack/rack"
)

func main() {
	input := flag.String("input", "", "Input WAV file (PCM); default is a built-in pulse pattern")
	output := flag.String("output", "output.wav", "Output WAV file path")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz (an input file overrides this)")
	duration := flag.Float64("duration", 0, "Render duration in seconds (0 = input length plus a 1 s tail, or 4 s without input)")
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

	rate := *sampleRate

	var source [][]float64
	if *input != "" {
		channels, fileRate, err := readWAV(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input %q: %v\n", *input, err)
			os.Exit(1)
		}
		if len(channels) > 2 {
			channels = channels[:2]
		}
		source = channels
		rate = fileRate
	}

	totalFrames := int(float64(rate) * *duration)
	if *duration <= 0 {
		if source != nil {
			totalFrames = len(source[0]) + rate
		} else {
			totalFrames = 4 * rate
		}
	}
	if totalFrames < 1 {
		totalFrames = 1
	}

	chain, err := rackdemo.NewChain(rack.Context{SampleRate: float64(rate)}, rackdemo.Config{
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

	fmt.Printf("Rendering %d frames at %d Hz (block %d)...\n", totalFrames, rate, *blockSize)

	inChannels := 1
	if source != nil {
		inChannels = len(source)
	}

	inBus := rack.NewBus(inChannels, *blockSize)
	outBus := rack.NewBus(2, *blockSize)
	inView := make(rack.Bus, inChannels)
	outView := make(rack.Bus, 2)

	samples := make([]float32, 0, totalFrames*2)
	peak := 0.0

	for rendered := 0; rendered < totalFrames; {
		n := *blockSize
		if rendered+n > totalFrames {
			n = totalFrames - rendered
		}

		for c := 0; c < inChannels; c++ {
			ch := inBus[c][:n]
			for i := range ch {
				frame := rendered + i
				if source != nil {
					if frame < len(source[c]) {
						ch[i] = source[c][frame]
					} else {
						ch[i] = 0
					}
				} else {
					ch[i] = rackdemo.PulseSample(float64(rate), frame)
				}
			}
			inView[c] = ch
		}
		outView[0] = outBus[0][:n]
		outView[1] = outBus[1][:n]

		chain.Render(inView, outView)

		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := outView[c][i]
				if a := math.Abs(v); a > peak {
					peak = a
				}
				samples = append(samples, float32(core.Clamp(v, -1, 1)))
			}
		}

		rendered += n
	}

	file, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, rate, 16, 2, 1)

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  rate,
			NumChannels: 2,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}

	if err := encoder.Write(buf); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}
	if err := encoder.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error finalizing WAV file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d frames, peak %.1f dBFS)\n", *output, totalFrames, core.LinearToDB(peak))
}
