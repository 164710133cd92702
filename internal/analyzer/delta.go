package analyzer

import "math"

// zeroBase is the smallest prior magnitude a percent change is computed against.
const zeroBase = 1e-9

// PercentChange returns (current-prior)/|prior|*100. The change is undefined
// when prior is absent or effectively zero. Dividing by |prior| keeps the sign
// of the result aligned with the direction of movement for negative bases.
func PercentChange(current float64, prior *float64) (float64, bool) {
	if prior == nil || math.Abs(*prior) < zeroBase {
		return 0, false
	}
	return (current - *prior) / math.Abs(*prior) * 100, true
}
