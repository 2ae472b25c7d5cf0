package rack

// Context carries the environmental configuration node factories need.
// The sample rate is passed explicitly; nodes never read ambient state.
type Context struct {
	SampleRate float64
}
