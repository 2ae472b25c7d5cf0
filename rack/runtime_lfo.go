package rack

import (
	"github.com/cwbudde/algo-rack/dsp/effects/modulation"
)

// Parameter descriptors for the "lfo" node.
var (
	lfoRateSpec    = ParamSpec{Name: "rate", Default: 1, Min: 0.01, Max: 40, Rate: RateSample}
	lfoShapeSpec   = ParamSpec{Name: "shape", Default: 0, Min: 0, Max: 3, Rate: RateBlock}
	lfoDepthSpec   = ParamSpec{Name: "depth", Default: 1, Min: 0, Max: 1, Rate: RateSample}
	lfoOffsetSpec  = ParamSpec{Name: "offset", Default: 0, Min: -1, Max: 1, Rate: RateSample}
	lfoBipolarSpec = ParamSpec{Name: "bipolar", Default: 1, Min: 0, Max: 1, Rate: RateBlock}
)

var lfoSpecs = []ParamSpec{
	lfoRateSpec,
	lfoShapeSpec,
	lfoDepthSpec,
	lfoOffsetSpec,
	lfoBipolarSpec,
}

// lfoNode generates a control signal; input bus 0 carries the rate CV
// and input bus 1 the sync trigger, both on channel 0.
type lfoNode struct {
	osc *modulation.LFO
}

func newLFONode(ctx Context) (Node, error) {
	osc, err := modulation.NewLFO(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return &lfoNode{osc: osc}, nil
}

func (n *lfoNode) Process(inputs []Bus, output Bus, params Params) bool {
	frames := output.Frames()

	rateCV := inputBus(inputs, 0).Channel(0)
	syncIn := inputBus(inputs, 1).Channel(0)

	shape := modulation.ShapeFromValue(lfoShapeSpec.First(params))
	bipolar := lfoBipolarSpec.Bool(params)

	for i := 0; i < frames; i++ {
		p := modulation.LFOParams{
			RateHz:  lfoRateSpec.At(params, i),
			Depth:   lfoDepthSpec.At(params, i),
			Offset:  lfoOffsetSpec.At(params, i),
			Shape:   shape,
			Bipolar: bipolar,
		}

		v := n.osc.ProcessSample(sampleAt(rateCV, i), sampleAt(syncIn, i), p)

		// The control value is broadcast identically to every channel.
		for _, ch := range output {
			if i < len(ch) {
				ch[i] = v
			}
		}
	}

	return true
}
