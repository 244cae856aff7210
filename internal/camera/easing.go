package camera

// easeInOutCubic accelerates through the first half and decelerates through
// the second. Used for position so flights start and land softly.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// easeOutQuad decelerates toward 1
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// easeInQuad accelerates from 0
func easeInQuad(t float64) float64 {
	return t * t
}

// lerp linearly blends a and b by t
func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// clamp01 bounds t to [0, 1]
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
