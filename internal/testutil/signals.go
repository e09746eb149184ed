package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// HarmonicTone sums sines at integer multiples of f0Hz. amplitudes[k] scales
// partial k+1.
func HarmonicTone(f0Hz, sampleRate float64, amplitudes []float64, length int) []float64 {
	out := make([]float64, length)
	for k, amp := range amplitudes {
		step := 2 * math.Pi * f0Hz * float64(k+1) / sampleRate
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ReferenceAutocorrelation returns r(τ) = Σ x[i]x[i+τ] for τ in [0, len(x))
// computed with go-dsp's FFT on a buffer padded against circular wrap.
func ReferenceAutocorrelation(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	padded := make([]float64, 2*len(x))
	copy(padded, x)

	spectrum := fft.FFTReal(padded)
	for i, c := range spectrum {
		mag := cmplx.Abs(c)
		spectrum[i] = complex(mag*mag, 0)
	}
	acf := fft.IFFT(spectrum)

	out := make([]float64, len(x))
	for i := range out {
		out[i] = real(acf[i])
	}
	return out
}

// ReferenceNSDF evaluates the normalized square difference function with
// plain nested loops over the first windowSize samples of x, for lags in
// [0, windowSize+padding). Values are clamped to [-1, 1] against rounding.
func ReferenceNSDF(x []float64, windowSize, padding int) []float64 {
	out := make([]float64, windowSize+padding)
	for tau := range out {
		var acf, m float64
		for i := 0; i < windowSize-tau; i++ {
			acf += x[i] * x[i+tau]
			m += x[i]*x[i] + x[i+tau]*x[i+tau]
		}
		if m != 0 {
			out[tau] = core.Clamp(2*acf/m, -1, 1)
		}
	}
	return out
}
