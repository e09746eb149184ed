// Package config provides the YAML settings schema and loader for the
// pitchinfo command.
package config

import "github.com/cwbudde/algo-pitch/dsp/pitch"

// LogLevel controls log verbosity for the command-line tool.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Source selects where the analysed frame comes from.
type Source string

const (
	SourceSine      Source = "sine"
	SourceHarmonics Source = "harmonics"
	SourceNoise     Source = "noise"
	SourceSilence   Source = "silence"
	SourceFile      Source = "file"
)

// IsValid reports whether s is a recognised signal source.
func (s Source) IsValid() bool {
	switch s {
	case SourceSine, SourceHarmonics, SourceNoise, SourceSilence, SourceFile:
		return true
	}
	return false
}

// Config is the root configuration structure.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
// Fields absent from the file keep the values from [Default].
type Config struct {
	LogLevel LogLevel       `yaml:"log_level"`
	Detector DetectorConfig `yaml:"detector"`
	Signal   SignalConfig   `yaml:"signal"`
}

// DetectorConfig mirrors [pitch.Config] in YAML form.
type DetectorConfig struct {
	SampleRate float64 `yaml:"sample_rate"`
	WindowSize int     `yaml:"window_size"`

	// Padding is the number of extra NSDF lags. Nil means WindowSize/2.
	Padding *int `yaml:"padding"`

	PowerThreshold   float64 `yaml:"power_threshold"`
	ClarityThreshold float64 `yaml:"clarity_threshold"`

	// Method is "fft" or "direct".
	Method string `yaml:"method"`
}

// SignalConfig describes the frame handed to the detector.
type SignalConfig struct {
	Source    Source    `yaml:"source"`
	Frequency float64   `yaml:"frequency"`
	Amplitude float64   `yaml:"amplitude"`
	Harmonics []float64 `yaml:"harmonics"`
	Seed      int64     `yaml:"seed"`

	// File is a text file of whitespace separated samples, used with
	// source "file". Lines starting with '#' are ignored.
	File string `yaml:"file"`

	// Offset is the first sample of the frame within File.
	Offset int `yaml:"offset"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Detector: DetectorConfig{
			SampleRate:       44100,
			WindowSize:       1024,
			PowerThreshold:   pitch.DefaultPowerThreshold,
			ClarityThreshold: pitch.DefaultClarityThreshold,
			Method:           pitch.MethodFFT.String(),
		},
		Signal: SignalConfig{
			Source:    SourceSine,
			Frequency: 440,
			Amplitude: 0.5,
			Harmonics: []float64{1, 0.5, 0.25},
			Seed:      1,
		},
	}
}

// PitchConfig converts the detector section into a validated [pitch.Config].
func (d DetectorConfig) PitchConfig() (pitch.Config, error) {
	method, err := pitch.ParseMethod(d.Method)
	if err != nil {
		return pitch.Config{}, err
	}
	opts := []pitch.Option{
		pitch.WithPowerThreshold(d.PowerThreshold),
		pitch.WithClarityThreshold(d.ClarityThreshold),
		pitch.WithMethod(method),
	}
	if d.Padding != nil {
		opts = append(opts, pitch.WithPadding(*d.Padding))
	}
	return pitch.NewConfig(d.SampleRate, d.WindowSize, opts...)
}
