package main

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// readWAV loads a PCM WAV file into per-channel float64 slices scaled to
// [-1, 1] and returns them with the file's sample rate.
func readWAV(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	var scale float64
	switch buf.SourceBitDepth {
	case 8:
		scale = 128
	case 24:
		scale = 8388608
	case 32:
		scale = 2147483648
	default:
		scale = 32768
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch

	channels := make([][]float64, ch)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < ch; c++ {
			channels[c][i] = float64(buf.Data[i*ch+c]) / scale
		}
	}

	return channels, buf.Format.SampleRate, nil
}
