package pitch

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

const parabolaEpsilon = 1e-12

// Energy returns sum(x^2) over frame.
func Energy(frame []float64) float64 {
	return floats.Dot(frame, frame)
}

// ParabolicOffset returns the sub-sample offset of the vertex of the parabola
// through (-1, left), (0, center), (1, right). Flat or degenerate parabolas
// yield 0. The result is clamped to [-1, 1].
func ParabolicOffset(left, center, right float64) float64 {
	den := left - 2*center + right
	if math.Abs(den) < parabolaEpsilon {
		return 0
	}
	delta := 0.5 * (left - right) / den
	if !core.IsFinite(delta) {
		return 0
	}
	return core.Clamp(delta, -1, 1)
}

// refineLag interpolates the peak position around lag. Lags without both
// neighbours are returned unchanged.
func refineLag(nsdf []float64, lag int) float64 {
	if lag <= 0 || lag >= len(nsdf)-1 {
		return float64(lag)
	}
	return float64(lag) + ParabolicOffset(nsdf[lag-1], nsdf[lag], nsdf[lag+1])
}

// lagToFrequency converts a refined lag to Hz. ok is false for non-physical lags.
func lagToFrequency(sampleRate, lag float64) (float64, bool) {
	if !(lag > 0) {
		return 0, false
	}
	return sampleRate / lag, true
}
