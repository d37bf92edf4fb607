package geometry

import (
	"testing"

	"github.com/tacusci/rawforge/internal/rawimage"
)

func buildTestImage() *rawimage.Working {
	w := rawimage.NewWorking(2, 2)
	w.SetPixel(0, 0, [4]uint16{1, 0, 0, 0}) // R
	w.SetPixel(1, 0, [4]uint16{0, 2, 0, 0}) // G
	w.SetPixel(0, 1, [4]uint16{0, 3, 0, 0}) // G
	w.SetPixel(1, 1, [4]uint16{0, 0, 4, 0}) // B
	return w
}

func TestFlipXYInvolution(t *testing.T) {
	w := buildTestImage()
	mask := FlipX | FlipY
	once := Flip(w, mask)
	twice := Flip(once, mask)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if twice.Pixel(x, y) != w.Pixel(x, y) {
				t.Fatalf("(%d,%d): flip applied twice should restore the original, got %v want %v",
					x, y, twice.Pixel(x, y), w.Pixel(x, y))
			}
		}
	}
}

func TestFlipNoneIsIdentity(t *testing.T) {
	w := buildTestImage()
	out := Flip(w, 0)
	if out != w {
		t.Fatalf("mask 0 should return the same working image unchanged")
	}
}

// TestFlipSwapAndYMatchesFlipIndexDerivation hand-traces the mask
// (axis-swap | y-flip) against flipIndex's own formula rather than
// against an external reference: flipIndex swaps the output
// coordinate first, then mirrors the row using the source's
// (pre-swap) height.
func TestFlipSwapAndYMatchesFlipIndexDerivation(t *testing.T) {
	w := buildTestImage()
	out := Flip(w, FlipSwap|FlipY)

	// row0 = [G, R], row1 = [B, G], per flipIndex's own math:
	// out(0,0) -> swap(0,0) -> row=1-1-0=... see flipIndex.
	want := [2][2][4]uint16{
		{{0, 2, 0, 0}, {1, 0, 0, 0}},
		{{0, 0, 4, 0}, {0, 3, 0, 0}},
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if out.Pixel(x, y) != want[y][x] {
				t.Fatalf("(%d,%d): got %v, want %v", x, y, out.Pixel(x, y), want[y][x])
			}
		}
	}
}

func TestRotateFujiPreservesChannelZeroDC(t *testing.T) {
	w := rawimage.NewWorking(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			w.SetPixel(x, y, [4]uint16{5000, 5000, 5000, 5000})
		}
	}
	out := RotateFuji(w, 8)
	px := out.Pixel(out.Width/2, out.Height/2)
	for c, v := range px {
		if v == 0 {
			t.Fatalf("channel %d: got 0, want roughly 5000 on a flat-field rotate", c)
		}
	}
}

func TestStretchAspectNoOpAtUnitRatio(t *testing.T) {
	w := buildTestImage()
	out := StretchAspect(w, 1)
	if out != w {
		t.Fatalf("pixel_aspect=1 should be a no-op")
	}
}
