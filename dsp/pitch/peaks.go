package pitch

import "gonum.org/v1/gonum/floats"

// KeyMaximum is the highest NSDF point of one positive lobe.
type KeyMaximum struct {
	Lag   int
	Value float64
}

// KeyMaxima scans nsdf by increasing lag and appends one key maximum per
// positive lobe to dst[:0]. The lobe around lag 0 is skipped. A lobe starts
// where the NSDF rises above zero and ends where it drops to zero or below, or
// at the end of nsdf. Ties within a lobe keep the smallest lag.
//
// If the NSDF never drops to zero after lag 0, the global maximum over lags
// [1, len(nsdf)) is returned as the only key maximum.
func KeyMaxima(nsdf []float64, dst []KeyMaximum) []KeyMaximum {
	dst = dst[:0]
	n := len(nsdf)
	if n < 2 {
		return dst
	}

	i := 1
	for i < n && nsdf[i] > 0 {
		i++
	}
	if i == n {
		lag := floats.MaxIdx(nsdf[1:]) + 1
		return append(dst, KeyMaximum{Lag: lag, Value: nsdf[lag]})
	}

	for i < n {
		for i < n && nsdf[i] <= 0 {
			i++
		}
		if i == n {
			break
		}
		best := i
		for i < n && nsdf[i] > 0 {
			if nsdf[i] > nsdf[best] {
				best = i
			}
			i++
		}
		dst = append(dst, KeyMaximum{Lag: best, Value: nsdf[best]})
	}
	return dst
}

// SelectPeak returns the first key maximum whose value is at least
// clarityThreshold times the largest key maximum value. ok is false when
// maxima is empty.
func SelectPeak(maxima []KeyMaximum, clarityThreshold float64) (peak KeyMaximum, ok bool) {
	if len(maxima) == 0 {
		return KeyMaximum{}, false
	}
	best := maxima[0].Value
	for _, m := range maxima[1:] {
		best = max(best, m.Value)
	}
	cutoff := clarityThreshold * best
	for _, m := range maxima {
		if m.Value >= cutoff {
			return m, true
		}
	}
	// Only reachable for thresholds above 1.
	return KeyMaximum{}, false
}
