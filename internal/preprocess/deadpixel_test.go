package preprocess

import (
	"strings"
	"testing"
	"time"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

func TestParseBadPixelFileSkipsBlankAndCommentLines(t *testing.T) {
	input := "# header\n\n3 4 1000\n"
	entries, err := ParseBadPixelFile(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Col != 3 || entries[0].Row != 4 {
		t.Fatalf("got %+v, want one entry (3,4,...)", entries)
	}
}

func TestRepairDeadPixelsAveragesNeighbors(t *testing.T) {
	plane := rawimage.NewPlane(5, 5, 1)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			plane.Set(x, y, 0, 40)
		}
	}
	plane.Set(2, 2, 0, 9999) // the bad pixel
	d := &camera.Descriptor{CFA: camera.CFAUnknown}
	bad := []BadPixel{{Col: 2, Row: 2, When: time.Unix(0, 0)}}
	RepairDeadPixels(plane, d, bad, time.Unix(100, 0))

	if plane.At(2, 2, 0) != 40 {
		t.Fatalf("got %d, want 40 (averaged from neighbors)", plane.At(2, 2, 0))
	}
}

func TestRepairDeadPixelsIgnoresFutureTimestamps(t *testing.T) {
	plane := rawimage.NewPlane(5, 5, 1)
	plane.Set(2, 2, 0, 9999)
	d := &camera.Descriptor{CFA: camera.CFAUnknown}
	bad := []BadPixel{{Col: 2, Row: 2, When: time.Unix(200, 0)}}
	RepairDeadPixels(plane, d, bad, time.Unix(100, 0))

	if plane.At(2, 2, 0) != 9999 {
		t.Fatal("expected no repair: bad pixel entry postdates the shot")
	}
}
