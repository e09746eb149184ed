package pitch

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Result is the outcome for one frame of a batch.
type Result struct {
	Index    int
	Estimate Estimate
	Voiced   bool
}

// DetectFrames runs detection over already-framed input with up to workers
// goroutines, each owning its own Detector. workers <= 0 uses GOMAXPROCS.
// Results are returned in frame order. The first failing frame or a cancelled
// ctx aborts the batch.
func DetectFrames(ctx context.Context, cfg Config, frames [][]float64, workers int) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]Result, len(frames))
	if len(frames) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range frames {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			d, err := NewFromConfig(cfg)
			if err != nil {
				return err
			}
			for i := range jobs {
				est, ok, err := d.Detect(frames[i])
				if err != nil {
					return fmt.Errorf("pitch: frame %d: %w", i, err)
				}
				results[i] = Result{Index: i, Estimate: est, Voiced: ok}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of results. Frequency and clarity statistics
// cover voiced frames only and are zero when none are voiced.
type Summary struct {
	Frames          int
	Voiced          int
	VoicedRatio     float64
	MeanFrequency   float64
	MedianFrequency float64
	MeanClarity     float64
}

// Summarize computes a Summary over results.
func Summarize(results []Result) Summary {
	s := Summary{Frames: len(results)}
	freqs := make([]float64, 0, len(results))
	clarity := make([]float64, 0, len(results))
	for _, r := range results {
		if !r.Voiced {
			continue
		}
		freqs = append(freqs, r.Estimate.Frequency)
		clarity = append(clarity, r.Estimate.Clarity)
	}
	s.Voiced = len(freqs)
	if s.Frames > 0 {
		s.VoicedRatio = float64(s.Voiced) / float64(s.Frames)
	}
	if s.Voiced == 0 {
		return s
	}
	s.MeanFrequency = stat.Mean(freqs, nil)
	s.MeanClarity = stat.Mean(clarity, nil)
	sort.Float64s(freqs)
	s.MedianFrequency = stat.Quantile(0.5, stat.Empirical, freqs, nil)
	return s
}
