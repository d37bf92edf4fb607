package rawimage

import "testing"

func TestPlaneSetAtRoundTrip(t *testing.T) {
	p := NewPlane(3, 3, 1)
	p.Set(1, 2, 0, 999)
	if got := p.At(1, 2, 0); got != 999 {
		t.Fatalf("got %d, want 999", got)
	}
}

func TestPlaneReleaseDropsData(t *testing.T) {
	p := NewPlane(2, 2, 1)
	p.Release()
	if p.Data != nil {
		t.Fatal("expected Data to be nil after Release")
	}
}
