package highlight

import (
	"math"
	"testing"

	"github.com/tacusci/rawforge/internal/rawimage"
)

func TestClipLimitsEveryChannelToMax(t *testing.T) {
	w := rawimage.NewWorking(1, 1)
	w.SetPixel(0, 0, [4]uint16{65535, 65535, 10, 65535})
	Clip(w, 40000)
	px := w.Pixel(0, 0)
	for c, v := range px {
		if v > 40000 {
			t.Fatalf("channel %d: got %d, exceeds clip bound 40000", c, v)
		}
	}
	if px[2] != 10 {
		t.Fatalf("channel below the bound should be untouched: got %d, want 10", px[2])
	}
}

func TestUnclipLeavesValuesUntouched(t *testing.T) {
	w := rawimage.NewWorking(1, 1)
	w.SetPixel(0, 0, [4]uint16{60000, 61000, 62000, 61000})
	before := w.Pixel(0, 0)
	Unclip(w)
	after := w.Pixel(0, 0)
	if before != after {
		t.Fatalf("got %v, want unchanged %v", after, before)
	}
}

func TestBlendPreservesLuminanceAndMatchesClippedChroma(t *testing.T) {
	// 80000 overflows uint16, so the scenario is built directly in
	// float space and run through the same math Blend uses per pixel
	// rather than through SetPixel's uint16 storage.
	v := [3]float64{80000, 50000, 40000}
	const max = 65535.0

	clipped := [3]float64{clipf(v[0], max), clipf(v[1], uint16(max)), clipf(v[2], uint16(max))}
	a := project(v)
	b := project(clipped)
	chromaA := math.Hypot(a[1], a[2])
	chromaB := math.Hypot(b[1], b[2])
	ratio := chromaB / chromaA
	out := reconstruct([3]float64{a[0], a[1] * ratio, a[2] * ratio})

	gotLuminance := (out[0] + out[1] + out[2]) / 3
	wantLuminance := (v[0] + v[1] + v[2]) / 3
	if math.Abs(gotLuminance-wantLuminance) > 1 {
		t.Fatalf("luminance: got %f, want %f (within 1 LSB)", gotLuminance, wantLuminance)
	}

	gotChroma := math.Hypot((out[0]-out[1])/math.Sqrt2, (out[0]+out[1]-2*out[2])/math.Sqrt(6))
	wantChroma := chromaB
	if math.Abs(gotChroma-wantChroma) > 1 {
		t.Fatalf("chroma magnitude: got %f, want %f (clipped copy's, within 1 LSB)", gotChroma, wantChroma)
	}
}

func TestRebuildFillsClippedChannelFromReference(t *testing.T) {
	w := rawimage.NewWorking(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			w.SetPixel(x, y, [4]uint16{30000, 20000, 30000, 20000})
		}
	}
	// Clip red at the center block only.
	w.Set(4, 4, 0, 65535)
	Rebuild(w, 65535, 2)

	got := w.At(4, 4, 0)
	if got >= 65535 {
		t.Fatalf("got %d, want the clipped red sample rebuilt below saturation from the green ratio", got)
	}
}
