package rack

import (
	"github.com/cwbudde/algo-rack/dsp/effects"
)

// Parameter descriptors for the "delay" node.
var (
	delayTimeSpec     = ParamSpec{Name: "time", Default: 300, Min: 20, Max: 1200, Rate: RateSample}
	delayFeedbackSpec = ParamSpec{Name: "feedback", Default: 0.3, Min: 0, Max: 0.9, Rate: RateSample}
	delayMixSpec      = ParamSpec{Name: "mix", Default: 0.5, Min: 0, Max: 1, Rate: RateSample}
	delayToneSpec     = ParamSpec{Name: "tone", Default: 1, Min: 0, Max: 1, Rate: RateSample}
	delayPingPongSpec = ParamSpec{Name: "pingpong", Default: 0, Min: 0, Max: 1, Rate: RateBlock}
)

var delaySpecs = []ParamSpec{
	delayTimeSpec,
	delayFeedbackSpec,
	delayMixSpec,
	delayToneSpec,
	delayPingPongSpec,
}

type delayNode struct {
	echo *effects.Echo
}

func newDelayNode(ctx Context) (Node, error) {
	echo, err := effects.NewEcho(ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return &delayNode{echo: echo}, nil
}

func (n *delayNode) Process(inputs []Bus, output Bus, params Params) bool {
	frames := output.Frames()

	in := inputBus(inputs, 0)
	inL := in.Channel(0)
	inR := in.ChannelOrFirst(1)

	outL := output.Channel(0)
	outR := output.Channel(1)

	pingPong := delayPingPongSpec.Bool(params)

	for i := 0; i < frames; i++ {
		p := effects.EchoParams{
			TimeMs:   delayTimeSpec.At(params, i),
			Feedback: delayFeedbackSpec.At(params, i),
			Mix:      delayMixSpec.At(params, i),
			Tone:     delayToneSpec.At(params, i),
			PingPong: pingPong,
		}

		l, r := n.echo.ProcessSample(sampleAt(inL, i), sampleAt(inR, i), p)

		outL[i] = l
		if outR != nil {
			outR[i] = r
		}
	}

	return true
}
