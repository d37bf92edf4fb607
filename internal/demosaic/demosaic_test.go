package demosaic

import (
	"testing"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// rggbPattern packs a standard RGGB 2x2 repeat into FilterPattern
// using the same 2-bit-per-cell layout channelAt reads.
const rggbPattern = 0 | (1 << 2) | (1 << 4) | (2 << 6)

func rggbDescriptor() *camera.Descriptor {
	return &camera.Descriptor{CFA: camera.CFABayer, FilterPattern: rggbPattern}
}

// syntheticPlane builds a 4x4 RGGB plane where every native-channel
// sample equals a distinct constant, so a correct demosaic fills
// every pixel with exactly those three constants.
func syntheticPlane(d *camera.Descriptor) *rawimage.Plane {
	plane := rawimage.NewPlane(4, 4, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			switch channelAt(d, x, y) {
			case 0:
				plane.Set(x, y, 0, 1000)
			case 1:
				plane.Set(x, y, 0, 2000)
			case 2:
				plane.Set(x, y, 0, 3000)
			}
		}
	}
	return plane
}

func TestBilinearReconstructsFlatSyntheticImage(t *testing.T) {
	d := rggbDescriptor()
	plane := syntheticPlane(d)
	w := Bilinear(plane, d)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			px := w.Pixel(x, y)
			if px[0] != 1000 || px[1] != 2000 || px[2] != 3000 {
				t.Fatalf("(%d,%d): got %v, want [1000 2000 3000 *] on a flat synthetic image", x, y, px)
			}
		}
	}
}

func TestVNGReconstructsFlatSyntheticImage(t *testing.T) {
	d := rggbDescriptor()
	plane := syntheticPlane(d)
	w := VNG(plane, d)

	px := w.Pixel(2, 2)
	if px[0] != 1000 || px[1] != 2000 || px[2] != 3000 {
		t.Fatalf("interior pixel: got %v, want [1000 2000 3000 *]", px)
	}
}

func TestPPGReconstructsFlatSyntheticImage(t *testing.T) {
	d := rggbDescriptor()
	plane := syntheticPlane(d)
	w := PPG(plane, d)

	px := w.Pixel(2, 2)
	if px[0] != 1000 || px[1] != 2000 || px[2] != 3000 {
		t.Fatalf("interior pixel: got %v, want [1000 2000 3000 *]", px)
	}
}

func TestAHDReconstructsFlatSyntheticImage(t *testing.T) {
	d := rggbDescriptor()
	plane := syntheticPlane(d)
	w := AHD(plane, d)

	px := w.Pixel(2, 2)
	if px[0] != 1000 || px[1] != 2000 || px[2] != 3000 {
		t.Fatalf("interior pixel: got %v, want [1000 2000 3000 *]", px)
	}
}

// TestBayerFlipProducesMirroredChannelAssignment exercises the other
// common CFA start phase (GBRG, the RGGB pattern shifted by one
// row) and checks the native channel at each corner flips as
// expected rather than silently defaulting to RGGB everywhere.
func TestBayerFlipProducesMirroredChannelAssignment(t *testing.T) {
	d := rggbDescriptor()
	if channelAt(d, 0, 0) != 0 {
		t.Fatalf("RGGB (0,0): got channel %d, want 0 (red)", channelAt(d, 0, 0))
	}
	if channelAt(d, 1, 1) != 2 {
		t.Fatalf("RGGB (1,1): got channel %d, want 2 (blue)", channelAt(d, 1, 1))
	}

	// GBRG: rows start green, blue; shifting RGGB's bit layout so
	// (0,0)=G, (1,0)=B, (0,1)=R, (1,1)=G.
	const gbrgPattern = 1 | (2 << 2) | (0 << 4) | (1 << 6)
	g := &camera.Descriptor{CFA: camera.CFABayer, FilterPattern: gbrgPattern}
	if channelAt(g, 0, 0) != 1 {
		t.Fatalf("GBRG (0,0): got channel %d, want 1 (green)", channelAt(g, 0, 0))
	}
	if channelAt(g, 1, 0) != 2 {
		t.Fatalf("GBRG (1,0): got channel %d, want 2 (blue)", channelAt(g, 1, 0))
	}
}

func TestMedianFilterPreservesUniformImage(t *testing.T) {
	w := rawimage.NewWorking(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			w.SetPixel(x, y, [4]uint16{1000, 2000, 3000, 2000})
		}
	}
	MedianFilter(w, 3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			px := w.Pixel(x, y)
			if px[0] != 1000 || px[2] != 3000 {
				t.Fatalf("(%d,%d): got %v, want unchanged [1000 2000 3000 2000] on a uniform image", x, y, px)
			}
		}
	}
}

func TestXTransReconstructsFlatSyntheticImage(t *testing.T) {
	// A 6x6 pattern where every cell maps to channel 1 (green), a
	// flat input that runs the reconstruction without needing a full
	// Fuji CFA table.
	d := &camera.Descriptor{CFA: camera.CFAXTrans}
	var pattern uint32
	for cell := 0; cell < 16; cell++ {
		pattern |= 1 << uint(cell*2%32) // all green by default
	}
	d.FilterPattern = pattern

	plane := rawimage.NewPlane(6, 6, 1)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			plane.Set(x, y, 0, 2000)
		}
	}
	w := XTrans(plane, d)
	px := w.Pixel(3, 3)
	if px[1] != 2000 {
		t.Fatalf("got green %d, want 2000 on a flat all-green synthetic tile", px[1])
	}
}
