package pitch

import (
	"math"
	"testing"
)

func TestParabolicOffset(t *testing.T) {
	tests := []struct {
		name                string
		left, center, right float64
		want                float64
	}{
		{name: "symmetric", left: 0.5, center: 1, right: 0.5, want: 0},
		// y = 1 - (x-0.2)^2 sampled at -1, 0, 1.
		{name: "vertex right", left: -0.44, center: 0.96, right: 0.36, want: 0.2},
		// y = 1 - (x+0.3)^2 sampled at -1, 0, 1.
		{name: "vertex left", left: 0.51, center: 0.91, right: -0.69, want: -0.3},
		{name: "flat", left: 1, center: 1, right: 1, want: 0},
		{name: "collinear", left: 0.2, center: 0.4, right: 0.6, want: 0},
		{name: "clamped", left: 1, center: 0.5, right: 1e-7, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParabolicOffset(tt.left, tt.center, tt.right)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("ParabolicOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefineLagBoundaries(t *testing.T) {
	nsdf := []float64{1, 0.2, 0.9, 0.4}
	if got := refineLag(nsdf, 0); got != 0 {
		t.Fatalf("refineLag(0) = %v, want 0", got)
	}
	if got := refineLag(nsdf, 3); got != 3 {
		t.Fatalf("refineLag(last) = %v, want 3", got)
	}
	want := 2 + ParabolicOffset(0.2, 0.9, 0.4)
	if got := refineLag(nsdf, 2); got != want {
		t.Fatalf("refineLag(2) = %v, want %v", got, want)
	}
}

func TestLagToFrequency(t *testing.T) {
	tests := []struct {
		lag    float64
		want   float64
		wantOK bool
	}{
		{lag: 100, want: 441, wantOK: true},
		{lag: 0.5, want: 88200, wantOK: true},
		{lag: 0, wantOK: false},
		{lag: -1, wantOK: false},
		{lag: math.NaN(), wantOK: false},
	}

	for _, tt := range tests {
		got, ok := lagToFrequency(44100, tt.lag)
		if ok != tt.wantOK {
			t.Fatalf("lagToFrequency(%v) ok = %v, want %v", tt.lag, ok, tt.wantOK)
		}
		if ok && got != tt.want {
			t.Fatalf("lagToFrequency(%v) = %v, want %v", tt.lag, got, tt.want)
		}
	}
}

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{1, -2, 3}); got != 14 {
		t.Fatalf("Energy() = %v, want 14", got)
	}
	if got := Energy(nil); got != 0 {
		t.Fatalf("Energy(nil) = %v, want 0", got)
	}
}
