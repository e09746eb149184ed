// Package signal generates deterministic test frames for pitch analysis:
// pure tones, harmonic series, white noise, and silence.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"gonum.org/v1/gonum/floats"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Sine generates a sine wave starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.Harmonics(freqHz, []float64{amplitude}, samples)
}

// Harmonics generates a harmonic series on the fundamental f0Hz. Entry k of
// amplitudes is the amplitude of partial k+1 (frequency (k+1)*f0Hz). Partials
// at or above Nyquist are rejected.
func (g *Generator) Harmonics(f0Hz float64, amplitudes []float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("harmonics samples must be > 0: %d", samples)
	}
	if !core.IsFinitePositive(f0Hz) {
		return nil, fmt.Errorf("harmonics fundamental must be positive and finite: %f", f0Hz)
	}
	if len(amplitudes) == 0 {
		return nil, fmt.Errorf("harmonics needs at least one amplitude")
	}
	if top := f0Hz * float64(len(amplitudes)); top >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("harmonics partial %d at %.1f Hz is at or above Nyquist (%.1f Hz)",
			len(amplitudes), top, g.cfg.SampleRate/2)
	}

	out := make([]float64, samples)
	for k, amp := range amplitudes {
		if amp == 0 {
			continue
		}
		step := 2 * math.Pi * f0Hz * float64(k+1) / g.cfg.SampleRate
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Silence returns a zero-filled signal.
func (g *Generator) Silence(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("silence samples must be > 0: %d", samples)
	}
	return make([]float64, samples), nil
}

// Mix returns the sample-wise sum of the given signals. The result has the
// length of the longest input.
func Mix(signals ...[]float64) []float64 {
	n := 0
	for _, s := range signals {
		n = max(n, len(s))
	}
	out := make([]float64, n)
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}

// Normalize returns a copy of data scaled so its largest magnitude equals
// targetPeak. All-zero input yields zeros.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	peak := floats.Norm(data, math.Inf(1))
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}
	floats.ScaleTo(out, targetPeak/peak, data)
	return out, nil
}
