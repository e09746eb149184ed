package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if _, err := cfg.Detector.PitchConfig(); err != nil {
		errs = append(errs, fmt.Errorf("detector: %w", err))
	}

	sig := cfg.Signal
	if !sig.Source.IsValid() {
		errs = append(errs, fmt.Errorf("signal.source %q is invalid; valid values: sine, harmonics, noise, silence, file", sig.Source))
	}
	if sig.Amplitude < 0 || math.IsNaN(sig.Amplitude) || math.IsInf(sig.Amplitude, 0) {
		errs = append(errs, fmt.Errorf("signal.amplitude %g must be finite and >= 0", sig.Amplitude))
	}

	switch sig.Source {
	case SourceSine, SourceHarmonics:
		nyquist := cfg.Detector.SampleRate / 2
		if !(sig.Frequency > 0) || sig.Frequency >= nyquist {
			errs = append(errs, fmt.Errorf("signal.frequency %g is out of range (0, %g)", sig.Frequency, nyquist))
		}
		if sig.Source == SourceHarmonics && len(sig.Harmonics) == 0 {
			errs = append(errs, errors.New("signal.harmonics is required when source is harmonics"))
		}
	case SourceFile:
		if sig.File == "" {
			errs = append(errs, errors.New("signal.file is required when source is file"))
		}
		if sig.Offset < 0 {
			errs = append(errs, fmt.Errorf("signal.offset %d must be >= 0", sig.Offset))
		}
	}

	return errors.Join(errs...)
}
