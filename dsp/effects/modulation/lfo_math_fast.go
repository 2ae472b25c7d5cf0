//go:build fastmath

package modulation

import (
	"github.com/cwbudde/algo-approx"
)

// ln2 is the natural logarithm of 2, used for log base conversions.
const ln2 = 0.693147180559945309417232121458

// mathPower2 computes 2^x using fast single-precision approximation.
// Uses the identity: 2^x = e^(x * ln(2))
func mathPower2(x float64) float64 {
	return float64(approx.FastExp(float32(x) * ln2))
}
