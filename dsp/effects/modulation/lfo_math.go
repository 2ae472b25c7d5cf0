//go:build !fastmath

package modulation

import "math"

// mathPower2 computes 2^x using the standard library.
func mathPower2(x float64) float64 {
	return math.Exp2(x)
}
