package pitch

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

const (
	// DefaultPowerThreshold is the minimum frame energy sum(x^2) for a pitch
	// to be reported.
	DefaultPowerThreshold = 5.0
	// DefaultClarityThreshold is the minimum NSDF peak height, and the
	// fraction of the best key maximum a candidate must reach.
	DefaultClarityThreshold = 0.6
)

// Method selects how the NSDF is computed.
type Method int

const (
	// MethodFFT computes the autocorrelation term with an FFT.
	MethodFFT Method = iota
	// MethodDirect evaluates the NSDF definition lag by lag.
	MethodDirect
)

func (m Method) String() string {
	switch m {
	case MethodFFT:
		return "fft"
	case MethodDirect:
		return "direct"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the Method named s ("fft" or "direct", case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fft", "":
		return MethodFFT, nil
	case "direct":
		return MethodDirect, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, s)
	}
}

// Config holds detector settings. It is immutable once a Detector is built.
type Config struct {
	SampleRate       float64
	WindowSize       int
	Padding          int
	PowerThreshold   float64
	ClarityThreshold float64
	Method           Method
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithPadding overrides the default padding of windowSize/2 lags.
func WithPadding(padding int) Option {
	return func(cfg *Config) { cfg.Padding = padding }
}

// WithPowerThreshold sets the minimum frame energy.
func WithPowerThreshold(threshold float64) Option {
	return func(cfg *Config) { cfg.PowerThreshold = threshold }
}

// WithClarityThreshold sets the clarity threshold in [0, 1].
func WithClarityThreshold(threshold float64) Option {
	return func(cfg *Config) { cfg.ClarityThreshold = threshold }
}

// WithMethod selects the NSDF computation method.
func WithMethod(m Method) Option {
	return func(cfg *Config) { cfg.Method = m }
}

// NewConfig returns a validated Config with defaults applied before opts.
func NewConfig(sampleRate float64, windowSize int, opts ...Option) (Config, error) {
	cfg := Config{
		SampleRate:       sampleRate,
		WindowSize:       windowSize,
		Padding:          windowSize / 2,
		PowerThreshold:   DefaultPowerThreshold,
		ClarityThreshold: DefaultClarityThreshold,
		Method:           MethodFFT,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	switch {
	case !core.IsFinitePositive(c.SampleRate):
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidConfig, c.SampleRate)
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidConfig, c.WindowSize)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding must be >= 0: %d", ErrInvalidConfig, c.Padding)
	case !core.IsFinite(c.PowerThreshold) || c.PowerThreshold < 0:
		return fmt.Errorf("%w: power threshold must be finite and >= 0: %f", ErrInvalidConfig, c.PowerThreshold)
	case !core.IsFinite(c.ClarityThreshold) || c.ClarityThreshold < 0 || c.ClarityThreshold > 1:
		return fmt.Errorf("%w: clarity threshold must be in [0, 1]: %f", ErrInvalidConfig, c.ClarityThreshold)
	case c.Method != MethodFFT && c.Method != MethodDirect:
		return fmt.Errorf("%w: unknown method %v", ErrInvalidConfig, c.Method)
	}
	return nil
}

// Lags returns the NSDF length, WindowSize + Padding.
func (c Config) Lags() int { return c.WindowSize + c.Padding }
