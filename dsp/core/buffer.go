package core

// EnsureLen returns a slice of length n, reusing the capacity of buf when it
// is large enough. Reused elements keep their previous contents.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero clears buf in place. Detectors use it to reset scratch between frames.
func Zero[T any](buf []T) {
	clear(buf)
}
