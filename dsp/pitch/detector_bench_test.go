package pitch

import (
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func benchmarkDetect(b *testing.B, method Method, windowSize int) {
	d, err := New(44100, windowSize, WithMethod(method))
	if err != nil {
		b.Fatal(err)
	}
	frame := testutil.HarmonicTone(220, 44100, []float64{1, 0.5, 0.25}, windowSize)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_, _, _ = d.Detect(frame)
	}
}

func BenchmarkDetectFFT1024(b *testing.B)    { benchmarkDetect(b, MethodFFT, 1024) }
func BenchmarkDetectFFT4096(b *testing.B)    { benchmarkDetect(b, MethodFFT, 4096) }
func BenchmarkDetectDirect1024(b *testing.B) { benchmarkDetect(b, MethodDirect, 1024) }

func BenchmarkKeyMaxima(b *testing.B) {
	nsdf, _ := ComputeNSDF(nil, testutil.DeterministicSine(440, 44100, 1, 2048), 2048, 1024)
	dst := make([]KeyMaximum, 0, len(nsdf)/2+1)

	b.ResetTimer()

	for range b.N {
		dst = KeyMaxima(nsdf, dst)
	}
}
