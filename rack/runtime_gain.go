package rack

import (
	"github.com/cwbudde/algo-rack/dsp/gain"
)

// Parameter descriptor for the "gain" node.
var gainGainSpec = ParamSpec{Name: "gain", Default: 1, Min: 0, Max: 2, Rate: RateSample}

var gainSpecs = []ParamSpec{gainGainSpec}

// gainNode applies the gain stage per channel; input bus 1 channel 0
// is the optional control voltage.
type gainNode struct {
	stage *gain.Stage

	// gainBuf holds the clamped copy of the host's gain automation;
	// it grows on demand and is reused across blocks.
	gainBuf []float64
}

func newGainNode(ctx Context) (Node, error) {
	stage, err := gain.NewStage(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return &gainNode{stage: stage}, nil
}

func (n *gainNode) Process(inputs []Bus, output Bus, params Params) bool {
	frames := output.Frames()

	in := inputBus(inputs, 0)
	cv := inputBus(inputs, 1).Channel(0)

	gainValues := n.clampedGain(params, frames)

	for c, outCh := range output {
		inCh := in.ChannelOrFirst(c)
		if inCh == nil {
			for i := range outCh {
				outCh[i] = 0
			}

			continue
		}

		n.stage.RenderBlock(outCh, inCh, cv, gainValues)
	}

	return true
}

// clampedGain copies the gain automation through the spec clamp. The
// host's slices are read-only, so clamping needs an owned buffer; a
// single-value slice stays single-value to keep the stage on its
// block-constant path.
func (n *gainNode) clampedGain(params Params, frames int) []float64 {
	length := frames
	if len(params["gain"]) <= 1 {
		length = 1
	}

	if cap(n.gainBuf) < length {
		n.gainBuf = make([]float64, length)
	}

	buf := n.gainBuf[:length]
	for i := range buf {
		buf[i] = gainGainSpec.At(params, i)
	}

	return buf
}
