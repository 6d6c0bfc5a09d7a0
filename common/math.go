package common

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp01 limits v to [0, 1].
func Clamp01[T ~float32 | ~float64](v T) T {
	return min(max(v, 0), 1)
}
