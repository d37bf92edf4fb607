package demosaic

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// HalfSize produces one RGB pixel per 2x2 Bayer block by reading each
// site directly, skipping interpolation entirely. Callers must not use
// it for CFAXTrans, whose 6x6 tile doesn't divide into disjoint 2x2
// same-pattern blocks the way a Bayer CFA does.
func HalfSize(plane *rawimage.Plane, d *camera.Descriptor) *rawimage.Working {
	outW, outH := plane.Width/2, plane.Height/2
	w := rawimage.NewWorking(outW, outH)

	for by := 0; by < outH; by++ {
		y := by * 2
		for bx := 0; bx < outW; bx++ {
			x := bx * 2
			var px [4]uint16
			var greenSum uint32
			var greenCount uint32
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					ch := channelAt(d, x+dx, y+dy)
					v := plane.At(x+dx, y+dy, 0)
					if ch == 1 {
						greenSum += uint32(v)
						greenCount++
						continue
					}
					px[ch] = v
				}
			}
			if greenCount > 0 {
				px[1] = uint16(greenSum / greenCount)
			}
			px[3] = px[1]
			w.SetPixel(bx, by, px)
		}
	}
	return w
}
