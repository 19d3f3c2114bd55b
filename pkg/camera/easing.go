package camera

// EaseInOutCubic maps a linear progress t in [0,1] onto the curve used for
// every viewpoint transition: slow start, fast middle, slow settle.
func EaseInOutCubic(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - (u*u*u)/2
}
