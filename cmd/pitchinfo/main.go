// Command pitchinfo estimates the pitch of a synthetic or file-loaded audio
// frame with the McLeod Pitch Method and prints the result.
//
// Usage:
//
//	pitchinfo [flags]
//
// Settings come from an optional YAML file (-config); flags given on the
// command line override the file.
//
// Examples:
//
//	pitchinfo -freq 440
//	pitchinfo -source harmonics -freq 110 -maxima 8
//	pitchinfo -source file -file take.txt -offset 4096 -frames 16
//	pitchinfo -config pitch.yaml -method direct
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/config"
)

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	maxima     int
	frames     int
	workers    int
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pitchinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	fs.IntVar(&opts.maxima, "maxima", 5, "number of key maxima to list (0 disables)")
	fs.IntVar(&opts.frames, "frames", 1, "number of consecutive frames to analyse")
	fs.IntVar(&opts.workers, "workers", 0, "worker goroutines for multi-frame runs (0 = GOMAXPROCS)")

	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	rate := fs.Float64("rate", 0, "sample rate in Hz")
	size := fs.Int("size", 0, "window size in samples")
	padding := fs.Int("padding", 0, "extra NSDF lags (default size/2)")
	power := fs.Float64("power", 0, "power threshold, sum of squared samples")
	clarity := fs.Float64("clarity", 0, "clarity threshold in [0, 1]")
	method := fs.String("method", "", "NSDF method: fft or direct")
	source := fs.String("source", "", "signal source: sine, harmonics, noise, silence, file")
	freq := fs.Float64("freq", 0, "fundamental of the generated signal in Hz")
	amp := fs.Float64("amp", 0, "amplitude of the generated signal")
	seed := fs.Int64("seed", 0, "noise seed")
	file := fs.String("file", "", "text file of samples (source file)")
	offset := fs.Int("offset", 0, "first sample of the frame within -file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pitchinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Estimates the pitch of one frame with the McLeod Pitch Method.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pitchinfo -freq 440\n")
		fmt.Fprintf(stderr, "  pitchinfo -source harmonics -freq 110 -maxima 8\n")
		fmt.Fprintf(stderr, "  pitchinfo -source file -file take.txt -frames 16\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "pitchinfo: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = config.LogLevel(*logLevel)
		case "rate":
			cfg.Detector.SampleRate = *rate
		case "size":
			cfg.Detector.WindowSize = *size
		case "padding":
			cfg.Detector.Padding = padding
		case "power":
			cfg.Detector.PowerThreshold = *power
		case "clarity":
			cfg.Detector.ClarityThreshold = *clarity
		case "method":
			cfg.Detector.Method = *method
		case "source":
			cfg.Signal.Source = config.Source(*source)
		case "freq":
			cfg.Signal.Frequency = *freq
		case "amp":
			cfg.Signal.Amplitude = *amp
		case "seed":
			cfg.Signal.Seed = *seed
		case "file":
			cfg.Signal.File = *file
			if cfg.Signal.Source == config.SourceSine && !isSet(fs, "source") {
				cfg.Signal.Source = config.SourceFile
			}
		case "offset":
			cfg.Signal.Offset = *offset
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "pitchinfo: %v\n", err)
		return 1
	}
	if opts.frames < 1 {
		fmt.Fprintf(stderr, "pitchinfo: -frames must be >= 1, got %d\n", opts.frames)
		return 1
	}

	logger := newLogger(stderr, cfg.LogLevel)
	pcfg, err := cfg.Detector.PitchConfig()
	if err != nil {
		fmt.Fprintf(stderr, "pitchinfo: %v\n", err)
		return 1
	}
	logger.Debug("detector configured",
		"sample_rate", pcfg.SampleRate,
		"window_size", pcfg.WindowSize,
		"padding", pcfg.Padding,
		"method", pcfg.Method,
		"source", cfg.Signal.Source,
	)

	samples, err := loadSignal(cfg.Signal, pcfg, opts.frames*pcfg.WindowSize)
	if err != nil {
		logger.Error("load signal", "err", err)
		return 1
	}

	if opts.frames == 1 {
		err = analyseFrame(stdout, pcfg, samples, opts.maxima)
	} else {
		err = analyseFrames(ctx, stdout, pcfg, samples, opts.frames, opts.workers)
	}
	if err != nil {
		var short *pitch.InsufficientSamplesError
		if errors.As(err, &short) {
			logger.Error("signal too short", "expected", short.Expected, "actual", short.Actual)
		} else {
			logger.Error("analysis failed", "err", err)
		}
		return 1
	}
	return 0
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func newLogger(w io.Writer, level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
