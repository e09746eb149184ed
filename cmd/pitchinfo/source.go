package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/dsp/signal"
	"github.com/cwbudde/algo-pitch/internal/config"
)

// loadSignal returns up to n samples of the configured source. File sources
// may return fewer; the detector reports the shortfall.
func loadSignal(sig config.SignalConfig, pcfg pitch.Config, n int) ([]float64, error) {
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{
			core.WithSampleRate(pcfg.SampleRate),
			core.WithFrameSize(pcfg.WindowSize),
		},
		signal.WithSeed(sig.Seed),
	)

	switch sig.Source {
	case config.SourceSine:
		return gen.Sine(sig.Frequency, sig.Amplitude, n)
	case config.SourceHarmonics:
		amps := make([]float64, len(sig.Harmonics))
		for i, a := range sig.Harmonics {
			amps[i] = a * sig.Amplitude
		}
		return gen.Harmonics(sig.Frequency, amps, n)
	case config.SourceNoise:
		return gen.WhiteNoise(sig.Amplitude, n)
	case config.SourceSilence:
		return gen.Silence(n)
	case config.SourceFile:
		f, err := os.Open(sig.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		samples, err := readSamples(f)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", sig.File, err)
		}
		start := min(sig.Offset, len(samples))
		end := min(start+n, len(samples))
		return samples[start:end], nil
	default:
		return nil, fmt.Errorf("unknown signal source %q", sig.Source)
	}
}

// readSamples parses whitespace separated floating point samples. Blank lines
// and lines starting with '#' are skipped.
func readSamples(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitFrames cuts samples into count consecutive windows of size samples.
// Trailing windows are short when samples run out.
func splitFrames(samples []float64, size, count int) [][]float64 {
	frames := make([][]float64, count)
	for i := range frames {
		start := min(i*size, len(samples))
		end := min(start+size, len(samples))
		frames[i] = samples[start:end]
	}
	return frames
}
