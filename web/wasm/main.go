//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

var (
	detector *pitch.Detector
	frame    []float64
	funcs    []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// new(sampleRate, windowSize) builds the detector with default thresholds
	// and windowSize/2 padding. Returns null or an error string.
	api.Set("new", export(func(args []js.Value) any {
		sr := 44100.0
		size := 1024
		if len(args) > 0 {
			sr = args[0].Float()
		}
		if len(args) > 1 {
			size = args[1].Int()
		}
		d, err := pitch.New(sr, size)
		if err != nil {
			return err.Error()
		}
		detector = d
		frame = make([]float64, 0, size)
		return js.Null()
	}))

	// detectPitch(samples) returns the pitch in Hz, 0 when no pitch is found,
	// or an error string for short input.
	api.Set("detectPitch", export(func(args []js.Value) any {
		if detector == nil {
			return "pitch: detector not initialised, call new first"
		}
		if len(args) < 1 {
			return 0.0
		}
		input := args[0]
		n := input.Length()
		frame = frame[:0]
		for i := 0; i < n; i++ {
			frame = append(frame, input.Index(i).Float())
		}
		freq, err := detector.DetectFrequency(frame)
		if err != nil {
			return err.Error()
		}
		return freq
	}))

	js.Global().Set("AlgoPitch", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
