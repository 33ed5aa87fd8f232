package spineflow

import "math"

// mapRange linearly maps v from [inMin, inMax] to [outMin, outMax] without
// clamping.
func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// truncDecimals truncates v toward negative infinity at the given number of
// decimal places. Truncation never moves a value up past the wrap point the
// way round-half-up can.
func truncDecimals(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	// Nudge by a tiny epsilon so values such as 0.8 (stored as 0.7999...)
	// survive truncation intact.
	return math.Floor(v*p+1e-9) / p
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// wrap01 wraps v into [0, 1).
func wrap01(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}
