package rack

import (
	"github.com/cwbudde/algo-rack/dsp/effects/reverb"
)

// Parameter descriptors for the "reverb" node.
var (
	reverbTimeSpec     = ParamSpec{Name: "time", Default: 0.5, Min: 0.1, Max: 0.98, Rate: RateBlock}
	reverbDampSpec     = ParamSpec{Name: "damp", Default: 0.5, Min: 0, Max: 1, Rate: RateBlock}
	reverbPreDelaySpec = ParamSpec{Name: "predelay", Default: 0, Min: 0, Max: 80, Rate: RateBlock}
	reverbMixSpec      = ParamSpec{Name: "mix", Default: 0.3, Min: 0, Max: 1, Rate: RateSample}
)

var reverbSpecs = []ParamSpec{
	reverbTimeSpec,
	reverbDampSpec,
	reverbPreDelaySpec,
	reverbMixSpec,
}

type reverbNode struct {
	rv *reverb.Reverb

	// Block-rate parameters are pushed into the kernel only on change,
	// so untouched blocks never recompute the comb coefficients.
	lastTime     float64
	lastDamp     float64
	lastPreDelay float64
}

func newReverbNode(ctx Context) (Node, error) {
	rv, err := reverb.New(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return &reverbNode{
		rv:           rv,
		lastTime:     rv.Time(),
		lastDamp:     rv.Damp(),
		lastPreDelay: rv.PreDelayMs(),
	}, nil
}

func (n *reverbNode) Process(inputs []Bus, output Bus, params Params) bool {
	frames := output.Frames()

	in := inputBus(inputs, 0)
	inL := in.Channel(0)
	inR := in.ChannelOrFirst(1)

	outL := output.Channel(0)
	outR := output.Channel(1)

	if t := reverbTimeSpec.First(params); t != n.lastTime {
		n.rv.SetTime(t)
		n.lastTime = t
	}

	if d := reverbDampSpec.First(params); d != n.lastDamp {
		n.rv.SetDamp(d)
		n.lastDamp = d
	}

	if pd := reverbPreDelaySpec.First(params); pd != n.lastPreDelay {
		n.rv.SetPreDelay(pd)
		n.lastPreDelay = pd
	}

	for i := 0; i < frames; i++ {
		mix := reverbMixSpec.At(params, i)

		l, r := n.rv.ProcessSample(sampleAt(inL, i), sampleAt(inR, i), mix)

		outL[i] = l
		if outR != nil {
			outR[i] = r
		}
	}

	return true
}
