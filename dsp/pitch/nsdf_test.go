package pitch

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

type nsdfCase struct {
	name       string
	frame      []float64
	windowSize int
	padding    int
}

func nsdfCases() []nsdfCase {
	burst := make([]float64, 1024)
	copy(burst, testutil.DeterministicSine(440, 44100, 0.5, 512))

	return []nsdfCase{
		{name: "burst over 1e-5 background", frame: burstOverBackground(1e-5), windowSize: 1024, padding: 512},
		{name: "burst over 3e-7 background", frame: burstOverBackground(3e-7), windowSize: 1024, padding: 512},
		{name: "note over hum", frame: noteOverHum(), windowSize: 1024, padding: 512},
		{name: "sine 440", frame: testutil.DeterministicSine(440, 44100, 1, 1536), windowSize: 1024, padding: 512},
		{name: "harmonic tone", frame: testutil.HarmonicTone(220, 44100, []float64{0.6, 1, 0.3}, 1024), windowSize: 1024, padding: 512},
		{name: "noise", frame: testutil.DeterministicNoise(3, 1, 1024), windowSize: 1024, padding: 512},
		{name: "burst then silence", frame: burst, windowSize: 1024, padding: 512},
		{name: "dc", frame: testutil.DC(0.25, 256), windowSize: 256, padding: 128},
		{name: "odd window", frame: testutil.DeterministicSine(1000, 48000, 0.7, 100), windowSize: 100, padding: 0},
		{name: "large padding", frame: testutil.DeterministicNoise(9, 0.5, 64), windowSize: 64, padding: 200},
	}
}

// burstOverBackground is a quiet 3 kHz tone with a loud 32-sample burst in
// the middle of a 1024-sample frame. Lags that skip the burst have overlap
// energy far below the frame energy.
func burstOverBackground(level float64) []float64 {
	frame := testutil.DeterministicSine(3000, 44100, level, 1024)
	burst := testutil.DeterministicSine(1000, 44100, 1, 32)
	for i, v := range burst {
		frame[496+i] += v
	}
	return frame
}

// noteOverHum places a 220 Hz note in the middle of the frame over a 1e-6
// mains hum that fills the rest.
func noteOverHum() []float64 {
	frame := testutil.DeterministicSine(50, 44100, 1e-6, 1024)
	note := testutil.DeterministicSine(220, 44100, 0.5, 400)
	for i, v := range note {
		frame[312+i] += v
	}
	return frame
}

func TestNSDFDirectMatchesReference(t *testing.T) {
	for _, tc := range nsdfCases() {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeNSDF(nil, tc.frame, tc.windowSize, tc.padding)
			if err != nil {
				t.Fatalf("ComputeNSDF() error = %v", err)
			}
			want := testutil.ReferenceNSDF(tc.frame, tc.windowSize, tc.padding)
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
		})
	}
}

func TestNSDFFFTMatchesDirect(t *testing.T) {
	for _, tc := range nsdfCases() {
		t.Run(tc.name, func(t *testing.T) {
			c, err := newFFTCorrelator(tc.windowSize)
			if err != nil {
				t.Fatalf("newFFTCorrelator() error = %v", err)
			}
			got := make([]float64, tc.windowSize+tc.padding)
			if err := c.compute(got, tc.frame[:tc.windowSize]); err != nil {
				t.Fatalf("compute() error = %v", err)
			}
			want := make([]float64, len(got))
			nsdfDirect(want, tc.frame[:tc.windowSize])

			testutil.RequireSliceNearlyEqual(t, got, want, 1e-6)
		})
	}
}

func TestNSDFFFTKeyMaximaMatchDirect(t *testing.T) {
	for _, frame := range [][]float64{noteOverHum(), burstOverBackground(1e-5)} {
		c, err := newFFTCorrelator(1024)
		if err != nil {
			t.Fatalf("newFFTCorrelator() error = %v", err)
		}
		viaFFT := make([]float64, 1536)
		if err := c.compute(viaFFT, frame); err != nil {
			t.Fatalf("compute() error = %v", err)
		}
		direct := make([]float64, 1536)
		nsdfDirect(direct, frame)

		got := KeyMaxima(viaFFT, nil)
		want := KeyMaxima(direct, nil)
		if len(got) != len(want) {
			t.Fatalf("FFT found %d key maxima, direct found %d", len(got), len(want))
		}
		for i := range want {
			if got[i].Lag != want[i].Lag {
				t.Fatalf("key maximum %d: FFT lag %d, direct lag %d", i, got[i].Lag, want[i].Lag)
			}
		}
	}
}

func TestNSDFOverflowingFrame(t *testing.T) {
	base := testutil.DeterministicSine(440, 44100, 1, 1024)
	loud := make([]float64, len(base))
	for i, v := range base {
		loud[i] = v * 1e160
	}

	want, err := ComputeNSDF(nil, base, 1024, 512)
	if err != nil {
		t.Fatalf("ComputeNSDF() error = %v", err)
	}
	got, err := ComputeNSDF(nil, loud, 1024, 512)
	if err != nil {
		t.Fatalf("ComputeNSDF() error = %v", err)
	}
	if got[0] != 1 {
		t.Fatalf("NSDF(0) = %v, want 1", got[0])
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)

	for _, method := range methods {
		d := mustNew(t, 44100, 1024, WithMethod(method))
		est, ok, err := d.Detect(loud)
		if err != nil || !ok {
			t.Fatalf("%s: Detect() = %v, %v, want a pitch", method, ok, err)
		}
		testutil.RequireWithinPercent(t, est.Frequency, 440, 1)
		if d.NSDF()[0] != 1 {
			t.Fatalf("%s: NSDF(0) = %v, want 1", method, d.NSDF()[0])
		}
	}
}

// The FFT path must agree with an NSDF assembled from an independently
// computed autocorrelation.
func TestNSDFFFTMatchesReferenceAutocorrelation(t *testing.T) {
	x := testutil.HarmonicTone(330, 44100, []float64{1, 0.5, 0.25}, 512)
	acf := testutil.ReferenceAutocorrelation(x)

	want := make([]float64, len(x))
	for tau := range want {
		var m float64
		for i := 0; i < len(x)-tau; i++ {
			m += x[i]*x[i] + x[i+tau]*x[i+tau]
		}
		if m != 0 {
			want[tau] = 2 * acf[tau] / m
		}
	}

	c, err := newFFTCorrelator(len(x))
	if err != nil {
		t.Fatalf("newFFTCorrelator() error = %v", err)
	}
	got := make([]float64, len(x))
	if err := c.compute(got, x); err != nil {
		t.Fatalf("compute() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-6)
}

func TestNSDFBoundsAndUnitLagZero(t *testing.T) {
	for _, method := range []Method{MethodFFT, MethodDirect} {
		for _, tc := range nsdfCases() {
			t.Run(method.String()+"/"+tc.name, func(t *testing.T) {
				d, err := New(44100, tc.windowSize,
					WithPadding(tc.padding), WithMethod(method), WithPowerThreshold(0))
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				if _, _, err := d.Detect(tc.frame); err != nil {
					t.Fatalf("Detect() error = %v", err)
				}
				nsdf := d.NSDF()
				testutil.RequireFinite(t, nsdf)
				testutil.RequireInRange(t, nsdf, -1, 1)
				if nsdf[0] != 1 {
					t.Fatalf("NSDF(0) = %v, want exactly 1", nsdf[0])
				}
				for tau := tc.windowSize; tau < len(nsdf); tau++ {
					if nsdf[tau] != 0 {
						t.Fatalf("NSDF(%d) = %v, want 0 past the window", tau, nsdf[tau])
					}
				}
			})
		}
	}
}

func TestNSDFSilentFrameIsZero(t *testing.T) {
	frame := make([]float64, 128)

	direct, err := ComputeNSDF(nil, frame, 128, 64)
	if err != nil {
		t.Fatalf("ComputeNSDF() error = %v", err)
	}
	c, err := newFFTCorrelator(128)
	if err != nil {
		t.Fatalf("newFFTCorrelator() error = %v", err)
	}
	viaFFT := make([]float64, 192)
	for i := range viaFFT {
		viaFFT[i] = 7
	}
	if err := c.compute(viaFFT, frame); err != nil {
		t.Fatalf("compute() error = %v", err)
	}

	for tau := range direct {
		if direct[tau] != 0 || viaFFT[tau] != 0 {
			t.Fatalf("lag %d: direct=%v fft=%v, want 0", tau, direct[tau], viaFFT[tau])
		}
	}
}

func TestComputeNSDFErrors(t *testing.T) {
	_, err := ComputeNSDF(nil, make([]float64, 10), 16, 8)
	var short *InsufficientSamplesError
	if !errors.As(err, &short) {
		t.Fatalf("error = %v, want *InsufficientSamplesError", err)
	}
	if short.Expected != 16 || short.Actual != 10 {
		t.Fatalf("error = %+v, want expected 16 actual 10", short)
	}

	if _, err := ComputeNSDF(nil, make([]float64, 10), 0, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if _, err := ComputeNSDF(nil, make([]float64, 10), 4, -1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestComputeNSDFReusesDst(t *testing.T) {
	dst := make([]float64, 0, 64)
	frame := testutil.DeterministicSine(500, 8000, 1, 32)

	got, err := ComputeNSDF(dst, frame, 32, 16)
	if err != nil {
		t.Fatalf("ComputeNSDF() error = %v", err)
	}
	if len(got) != 48 {
		t.Fatalf("len = %d, want 48", len(got))
	}
	if &got[0] != &dst[:1][0] {
		t.Fatal("ComputeNSDF did not reuse dst")
	}
}
