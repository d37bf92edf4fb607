package rawimage

import "testing"

func TestSetAtRoundTrip(t *testing.T) {
	w := NewWorking(4, 3)
	w.Set(2, 1, 2, 4096)
	if got := w.At(2, 1, 2); got != 4096 {
		t.Fatalf("got %d, want 4096", got)
	}
}

func TestCollapseSecondaryGreenAverages(t *testing.T) {
	w := NewWorking(1, 1)
	w.SetPixel(0, 0, [4]uint16{100, 200, 300, 400})
	w.CollapseSecondaryGreen()
	px := w.Pixel(0, 0)
	if px[1] != 300 {
		t.Fatalf("expected averaged green 300, got %d", px[1])
	}
	if px[3] != 0 {
		t.Fatalf("expected secondary green zeroed, got %d", px[3])
	}
}

func TestCheckBoundsRejectsOversizedWorkingImage(t *testing.T) {
	w := NewWorking(100, 50)
	if err := CheckBounds(w, 100, 50, 10, 0); err == nil {
		t.Fatal("expected bounds violation when left_margin leaves no room")
	}
	if err := CheckBounds(w, 110, 50, 10, 0); err != nil {
		t.Fatalf("expected valid bounds, got %v", err)
	}
}
