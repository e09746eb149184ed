// Package pitch estimates the fundamental frequency of a monophonic audio
// frame with the McLeod Pitch Method (MPM).
//
// A [Detector] runs a fixed pipeline per frame:
//
//   - Power gate: frames whose energy sum(x^2) is below the power threshold
//     report no pitch.
//   - Correlation: the normalized square difference function (NSDF) is
//     computed for every lag in [0, windowSize+padding). Values lie in
//     [-1, 1] and NSDF(0) is 1 for any frame with energy.
//   - Peak picking: each positive NSDF lobe contributes one key maximum. The
//     first key maximum reaching clarityThreshold times the highest key
//     maximum is chosen, which favours the fundamental over its harmonics.
//   - Refinement: parabolic interpolation around the chosen lag, then
//     frequency = sampleRate / lag.
//
// # Usage
//
//	d, err := pitch.New(44100, 1024)
//	if err != nil {
//		return err
//	}
//	est, ok, err := d.Detect(frame) // len(frame) >= 1024
//	if err != nil {
//		return err // *InsufficientSamplesError
//	}
//	if ok {
//		fmt.Printf("%.1f Hz (clarity %.2f)\n", est.Frequency, est.Clarity)
//	}
//
// # Correlation methods
//
// [MethodFFT] (default) computes the autocorrelation with a reusable FFT plan
// in O(n log n). [MethodDirect] evaluates the definition in O(n^2) and serves
// as the reference; both agree to well within 1e-4.
//
// # Concurrency
//
// A Detector owns mutable scratch buffers and must not be shared between
// goroutines without external locking. Use one Detector per goroutine, or
// [DetectFrames] for already-framed batches.
package pitch
