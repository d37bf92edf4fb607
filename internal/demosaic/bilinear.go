package demosaic

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// Bilinear reconstructs every channel by averaging the nearest
// same-color neighbors, bounds-checking each neighbor so edge pixels
// average only the neighbors that exist; nothing is cropped.
func Bilinear(plane *rawimage.Plane, d *camera.Descriptor) *rawimage.Working {
	w := rawimage.NewWorking(plane.Width, plane.Height)

	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			native := channelAt(d, x, y)
			v := plane.At(x, y, 0)
			var px [4]uint16
			px[native] = v
			for c := 0; c < 3; c++ {
				if c == native {
					continue
				}
				px[c] = bilinearNeighborAverage(plane, d, x, y, c)
			}
			if native == 1 {
				px[3] = v
			} else {
				px[3] = px[1]
			}
			w.SetPixel(x, y, px)
		}
	}
	return w
}

// bilinearNeighborAverage averages every same-channel sample within
// the 3x3 neighborhood of (x, y), clamped to the plane edges.
func bilinearNeighborAverage(plane *rawimage.Plane, d *camera.Descriptor, x, y, channel int) uint16 {
	var sum, count uint32
	for dy := -1; dy <= 1; dy++ {
		yy := y + dy
		if yy < 0 || yy >= plane.Height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			xx := x + dx
			if xx < 0 || xx >= plane.Width {
				continue
			}
			if channelAt(d, xx, yy) != channel {
				continue
			}
			sum += uint32(plane.At(xx, yy, 0))
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return uint16(sum / count)
}
