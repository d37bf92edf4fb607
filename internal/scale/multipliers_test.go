package scale

import (
	"testing"

	"github.com/tacusci/rawforge/internal/camera"
)

func TestNormalizeScalesToMinimumByDefault(t *testing.T) {
	m := normalize([4]float64{2, 4, 8, 4}, false)
	if m[0] != 1 {
		t.Fatalf("got %v, want channel 0 (the minimum) normalized to 1", m)
	}
	if m[2] != 4 {
		t.Fatalf("got %v, want channel 2 = 8/2 = 4", m)
	}
}

func TestNormalizeScalesToMaximumWhenClippingHighlights(t *testing.T) {
	m := normalize([4]float64{2, 4, 8, 4}, true)
	if m[2] != 1 {
		t.Fatalf("got %v, want channel 2 (the maximum) normalized to 1", m)
	}
}

func TestUserMultiplierBypassesEverythingElse(t *testing.T) {
	d := &camera.Descriptor{}
	want := [4]float64{1, 2, 1, 2}
	got := Multipliers(d, SourceUser, want, GrayBox{}, nil, false)
	normalizedWant := normalize(want, false)
	if got != normalizedWant {
		t.Fatalf("got %v, want %v", got, normalizedWant)
	}
}

func TestInverseRowSumsFallsBackToOneOnZeroRow(t *testing.T) {
	var matrix [12]float64
	m := inverseRowSums(matrix)
	for i, v := range m {
		if v != 1 {
			t.Fatalf("channel %d: got %f, want 1 (zero-sum row falls back)", i, v)
		}
	}
}
