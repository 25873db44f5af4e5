package emojiextract

// NearestSize picks the strike size to use for an output of want pixels.
// An exact match is always used. Otherwise the size with the smallest
// absolute difference wins, and of two equidistant sizes the larger one is
// chosen so that bitmaps are scaled down rather than up. It returns false
// when available is empty.
func NearestSize(available []int, want int) (int, bool) {
	if len(available) == 0 {
		return 0, false
	}

	best := available[0]
	for _, size := range available {
		if size == want {
			return size, true
		}
		d, bestDiff := absDiff(size, want), absDiff(best, want)
		if d < bestDiff || (d == bestDiff && size > best) {
			best = size
		}
	}
	return best, true
}

// absDiff returns the absolute difference between two sizes.
func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
