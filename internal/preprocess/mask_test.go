package preprocess

import (
	"testing"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

func TestCropProducesActiveRectangleBounds(t *testing.T) {
	plane := rawimage.NewPlane(10, 10, 1)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			plane.Set(x, y, 0, uint16(y*10+x))
		}
	}
	active := camera.Rect{Left: 2, Top: 3, Width: 4, Height: 5}
	cropped := Crop(plane, active)

	if cropped.Width != active.Width || cropped.Height != active.Height {
		t.Fatalf("cropped dims = %dx%d, want %dx%d", cropped.Width, cropped.Height, active.Width, active.Height)
	}
	if cropped.At(0, 0, 0) != plane.At(2, 3, 0) {
		t.Fatalf("cropped origin does not match source at active rect's top-left")
	}
}

func TestMeasureMaskedBlackSkipsWhenManySamplesAreZero(t *testing.T) {
	// Half the interior samples are zero, at or above the quarter
	// threshold, so the measured black level is NOT trusted.
	plane := rawimage.NewPlane(8, 8, 1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 0 {
				plane.Set(x, y, 0, 0)
			} else {
				plane.Set(x, y, 0, 50)
			}
		}
	}
	d := &camera.Descriptor{CFA: camera.CFAUnknown}
	rects := []MaskRect{{Left: 0, Top: 0, Width: 8, Height: 8}}
	result := MeasureMaskedBlack(plane, d, rects)
	if result.Hit {
		t.Fatal("expected no hit: at-or-above-quarter zero samples should not overwrite the black level")
	}
}

func TestMeasureMaskedBlackMeasuresChannelMeans(t *testing.T) {
	// No zero samples at all, well under the quarter threshold, so
	// the measured means are trusted and written back.
	plane := rawimage.NewPlane(8, 8, 1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			plane.Set(x, y, 0, 100)
		}
	}
	d := &camera.Descriptor{CFA: camera.CFAUnknown}
	rects := []MaskRect{{Left: 0, Top: 0, Width: 8, Height: 8}}
	result := MeasureMaskedBlack(plane, d, rects)
	if !result.Hit {
		t.Fatal("expected a hit: zero near-zero samples is well under the quarter threshold")
	}
	if result.Channel[0] != 100 {
		t.Fatalf("got channel[0]=%d, want 100", result.Channel[0])
	}
}
