package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

func analyseFrame(w io.Writer, pcfg pitch.Config, frame []float64, maxima int) error {
	d, err := pitch.NewFromConfig(pcfg)
	if err != nil {
		return err
	}
	est, ok, err := d.Detect(frame)
	if err != nil {
		return err
	}

	energy := pitch.Energy(frame[:pcfg.WindowSize])
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Sample rate\t%.0f Hz\n", pcfg.SampleRate)
	fmt.Fprintf(tw, "Window\t%d (+%d padding, %s)\n", pcfg.WindowSize, pcfg.Padding, pcfg.Method)
	fmt.Fprintf(tw, "Energy\t%.4f (%.2f dBFS)\n", energy, core.LinearPowerToDB(energy/float64(pcfg.WindowSize)))
	if ok {
		fmt.Fprintf(tw, "Pitch\t%.2f Hz\n", est.Frequency)
		fmt.Fprintf(tw, "Clarity\t%.4f\n", est.Clarity)
		if note, ok := est.Note(); ok {
			fmt.Fprintf(tw, "Note\t%s %+.1f cents (MIDI %d)\n", note, note.Cents, note.MIDI)
		}
	} else {
		fmt.Fprintf(tw, "Pitch\tnone\n")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	keys := d.KeyMaxima()
	if maxima <= 0 || len(keys) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Lag\tNSDF\tFrequency [Hz]\n")
	fmt.Fprintf(tw, "---\t----\t--------------\n")
	for _, k := range keys[:min(maxima, len(keys))] {
		fmt.Fprintf(tw, "%d\t%.4f\t%.2f\n", k.Lag, k.Value, pcfg.SampleRate/float64(k.Lag))
	}
	return tw.Flush()
}

func analyseFrames(ctx context.Context, w io.Writer, pcfg pitch.Config, samples []float64, count, workers int) error {
	frames := splitFrames(samples, pcfg.WindowSize, count)
	results, err := pitch.DetectFrames(ctx, pcfg, frames, workers)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frame\tTime [s]\tPitch [Hz]\tClarity\tNote\n")
	fmt.Fprintf(tw, "-----\t--------\t----------\t-------\t----\n")
	for _, r := range results {
		t := float64(r.Index*pcfg.WindowSize) / pcfg.SampleRate
		if !r.Voiced {
			fmt.Fprintf(tw, "%d\t%.3f\t-\t-\t-\n", r.Index, t)
			continue
		}
		note := "-"
		if n, ok := r.Estimate.Note(); ok {
			note = n.String()
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%.2f\t%.4f\t%s\n", r.Index, t, r.Estimate.Frequency, r.Estimate.Clarity, note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := pitch.Summarize(results)
	fmt.Fprintf(w, "\nvoiced %d/%d (%.0f%%), mean %.2f Hz, median %.2f Hz, mean clarity %.4f\n",
		s.Voiced, s.Frames, 100*s.VoicedRatio, s.MeanFrequency, s.MedianFrequency, s.MeanClarity)
	return nil
}
