// Package rackdemo wires the fixed demonstration patch shared by the
// command-line front ends: delay -> reverb -> gain, with a unipolar LFO
// feeding the gain's control-voltage bus as a slow tremolo.
package rackdemo

import (
	"fmt"

	"github.com/cwbudde/algo-rack/rack"
)

// Config carries the user-facing knobs of the demo patch. Values outside
// a node's range are clamped by the node itself.
type Config struct {
	DelayTimeMs float64
	Feedback    float64
	Mix         float64
	ReverbTime  float64
	Gain        float64
}

// Chain is the assembled patch. It owns its intermediate buses and grows
// them on demand, so after the first full-size block Render does not
// allocate.
type Chain struct {
	delay  rack.Node
	lfo    rack.Node
	reverb rack.Node
	gain   rack.Node

	delayParams  rack.Params
	lfoParams    rack.Params
	reverbParams rack.Params
	gainParams   rack.Params

	busA rack.Bus
	busB rack.Bus
	cv   rack.Bus

	viewA  rack.Bus
	viewB  rack.Bus
	viewCV rack.Bus
}

// NewChain builds the patch from the default node registry.
func NewChain(ctx rack.Context, cfg Config) (*Chain, error) {
	reg := rack.DefaultRegistry()

	nodes := make(map[string]rack.Node, 4)
	for _, name := range []string{"delay", "lfo", "reverb", "gain"} {
		node, err := reg.Lookup(name)(ctx)
		if err != nil {
			return nil, fmt.Errorf("building %s node: %w", name, err)
		}
		nodes[name] = node
	}

	return &Chain{
		delay:  nodes["delay"],
		lfo:    nodes["lfo"],
		reverb: nodes["reverb"],
		gain:   nodes["gain"],

		delayParams: rack.Params{
			"time":     {cfg.DelayTimeMs},
			"feedback": {cfg.Feedback},
			"mix":      {cfg.Mix},
		},
		// Unipolar sine between 0.2 and 1.0: the rectified CV input of
		// the gain node never gates the signal fully off.
		lfoParams: rack.Params{
			"rate":    {2},
			"bipolar": {0},
			"depth":   {0.8},
			"offset":  {0.2},
		},
		reverbParams: rack.Params{
			"time": {cfg.ReverbTime},
		},
		gainParams: rack.Params{
			"gain": {cfg.Gain},
		},

		viewA:  make(rack.Bus, 2),
		viewB:  make(rack.Bus, 2),
		viewCV: make(rack.Bus, 1),
	}, nil
}

// Render processes one block: in feeds the delay, the gain writes into
// out. Short final blocks reuse the full-size scratch buses.
func (c *Chain) Render(in, out rack.Bus) {
	frames := out.Frames()
	if frames == 0 {
		return
	}

	if c.busA.Frames() < frames {
		c.busA = rack.NewBus(2, frames)
		c.busB = rack.NewBus(2, frames)
		c.cv = rack.NewBus(1, frames)
	}

	for ch := range c.viewA {
		c.viewA[ch] = c.busA[ch][:frames]
		c.viewB[ch] = c.busB[ch][:frames]
	}
	c.viewCV[0] = c.cv[0][:frames]

	c.lfo.Process(nil, c.viewCV, c.lfoParams)
	c.delay.Process([]rack.Bus{in}, c.viewA, c.delayParams)
	c.reverb.Process([]rack.Bus{c.viewA}, c.viewB, c.reverbParams)
	c.gain.Process([]rack.Bus{c.viewB, c.viewCV}, out, c.gainParams)
}
