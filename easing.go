package qbloch

import "math"

// Easing reparameterizes linear progress x∈[0,1] into eased progress.
type Easing func(x float64) float64

func Linear(x float64) float64 {
	return clamp01(x)
}

// EaseInOutCubic accelerates through the first half and decelerates through the second.
func EaseInOutCubic(x float64) float64 {
	x = clamp01(x)
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 3)/2
}

// EaseOutQuad starts fast and settles, used for trail fade.
func EaseOutQuad(x float64) float64 {
	x = clamp01(x)
	return 1 - (1-x)*(1-x)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
