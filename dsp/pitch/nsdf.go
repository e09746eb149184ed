package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// directLagRatio is the fraction of the frame energy below which a lag's
// denominator is too small for the FFT numerator, whose absolute error scales
// with the whole frame's energy. Such lags use an exact dot product.
const directLagRatio = 1e-6

// ComputeNSDF evaluates the normalized square difference function of the
// first windowSize samples of frame for lags [0, windowSize+padding) using the
// direct method. dst is reused when it has enough capacity.
func ComputeNSDF(dst, frame []float64, windowSize, padding int) ([]float64, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidConfig, windowSize)
	}
	if padding < 0 {
		return nil, fmt.Errorf("%w: padding must be >= 0: %d", ErrInvalidConfig, padding)
	}
	if len(frame) < windowSize {
		return nil, &InsufficientSamplesError{Expected: windowSize, Actual: len(frame)}
	}
	dst = core.EnsureLen(dst, windowSize+padding)
	nsdfDirect(dst, rescaleOverflow(nil, frame[:windowSize]))
	return dst, nil
}

// nsdfDirect fills dst with NSDF values of x. Lags at or beyond len(x) have no
// overlapping samples and are zero.
func nsdfDirect(dst, x []float64) {
	w := len(x)
	for tau := range dst {
		if tau >= w {
			dst[tau] = 0
			continue
		}
		n := w - tau
		head, tail := x[:n], x[tau:]
		acf := floats.Dot(head, tail)
		m := floats.Dot(head, head) + floats.Dot(tail, tail)
		dst[tau] = normalizeLag(acf, m)
	}
}

// rescaleOverflow returns x unchanged unless its energy overflows while every
// sample is finite. Then x is copied into scratch divided by its peak
// magnitude, which leaves the NSDF unchanged.
func rescaleOverflow(scratch, x []float64) []float64 {
	if core.IsFinite(Energy(x)) {
		return x
	}
	peak := floats.Norm(x, math.Inf(1))
	if !core.IsFinitePositive(peak) {
		return x
	}
	scratch = core.EnsureLen(scratch, len(x))
	floats.ScaleTo(scratch, 1/peak, x)
	return scratch
}

func normalizeLag(acf, m float64) float64 {
	if m == 0 {
		return 0
	}
	v := 2 * acf / m
	if !core.IsFinite(v) {
		return 0
	}
	return core.Clamp(v, -1, 1)
}

// fftCorrelator computes the NSDF with an FFT autocorrelation. Denominators
// come from prefix and suffix sums of the squared samples so no lag is
// derived by subtraction. All scratch is allocated once.
type fftCorrelator struct {
	plan *algofft.Plan[complex128]
	buf  []complex128
	re   []float64
	im   []float64
	pow  []float64
	sq   []float64
	head []float64 // head[n] = sum(sq[:n])
	tail []float64 // tail[i] = sum(sq[i:])
}

func newFFTCorrelator(windowSize int) (*fftCorrelator, error) {
	// Lags below windowSize must not alias with the circular tail.
	size := core.NextPowerOf2(2 * windowSize)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("pitch: failed to create FFT plan: %w", err)
	}
	return &fftCorrelator{
		plan: plan,
		buf:  make([]complex128, size),
		re:   make([]float64, size),
		im:   make([]float64, size),
		pow:  make([]float64, size),
		sq:   make([]float64, windowSize),
		head: make([]float64, windowSize+1),
		tail: make([]float64, windowSize+1),
	}, nil
}

func (c *fftCorrelator) compute(dst, x []float64) error {
	w := len(x)

	core.Zero(c.buf)
	for i, v := range x {
		c.buf[i] = complex(v, 0)
	}
	if err := c.plan.Forward(c.buf, c.buf); err != nil {
		return fmt.Errorf("pitch: forward FFT failed: %w", err)
	}

	for i, v := range c.buf {
		c.re[i] = real(v)
		c.im[i] = imag(v)
	}
	vecmath.Power(c.pow, c.re, c.im)
	for i, p := range c.pow {
		c.buf[i] = complex(p, 0)
	}
	if err := c.plan.Inverse(c.buf, c.buf); err != nil {
		return fmt.Errorf("pitch: inverse FFT failed: %w", err)
	}

	vecmath.MulBlock(c.sq, x, x)
	c.head[0] = 0
	for i, v := range c.sq {
		c.head[i+1] = c.head[i] + v
	}
	c.tail[w] = 0
	for i := w - 1; i >= 0; i-- {
		c.tail[i] = c.tail[i+1] + c.sq[i]
	}
	energy := c.head[w]
	if energy == 0 || !core.IsFinite(energy) {
		core.Zero(dst)
		return nil
	}

	// r(0) must equal the energy; this also absorbs the inverse transform's
	// scaling convention.
	scale := 1.0
	if r0 := real(c.buf[0]); r0 != 0 {
		scale = energy / r0
	}
	exactBelow := 2 * energy * directLagRatio

	dst[0] = 1
	for tau := 1; tau < len(dst); tau++ {
		if tau >= w {
			dst[tau] = 0
			continue
		}
		n := w - tau
		m := c.head[n] + c.tail[tau]
		acf := real(c.buf[tau]) * scale
		if m < exactBelow {
			acf = floats.Dot(x[:n], x[tau:])
		}
		dst[tau] = normalizeLag(acf, m)
	}
	return nil
}
