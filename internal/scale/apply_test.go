package scale

import (
	"testing"

	"github.com/tacusci/rawforge/internal/rawimage"
)

func TestApplyWithUnitMultiplierIsIdempotentOnAlreadyScaledData(t *testing.T) {
	w := rawimage.NewWorking(2, 2)
	w.SetPixel(0, 0, [4]uint16{1000, 2000, 3000, 2000})

	unit := [4]float64{1, 1, 1, 1}
	Apply(w, unit, [4]int{0, 0, 0, 0}, 65535, 0)

	got := w.Pixel(0, 0)
	want := [4]uint16{1000, 2000, 3000, 2000}
	if got != want {
		t.Fatalf("got %v, want %v (white_level=65535, black=0, mul=1 is a no-op)", got, want)
	}
}

func TestApplyClipsToZeroBelowBlack(t *testing.T) {
	w := rawimage.NewWorking(1, 1)
	w.SetPixel(0, 0, [4]uint16{10, 10, 10, 10})

	unit := [4]float64{1, 1, 1, 1}
	Apply(w, unit, [4]int{50, 50, 50, 50}, 65535, 0)

	got := w.Pixel(0, 0)
	for c, v := range got {
		if v != 0 {
			t.Fatalf("channel %d: got %d, want 0 (sample below black clips to zero)", c, v)
		}
	}
}

func TestApplyClipsToMaxOnOverflow(t *testing.T) {
	w := rawimage.NewWorking(1, 1)
	w.SetPixel(0, 0, [4]uint16{60000, 60000, 60000, 60000})

	big := [4]float64{10, 10, 10, 10}
	Apply(w, big, [4]int{0, 0, 0, 0}, 65535, 0)

	got := w.Pixel(0, 0)
	for c, v := range got {
		if v != 65535 {
			t.Fatalf("channel %d: got %d, want 65535 clip", c, v)
		}
	}
}
