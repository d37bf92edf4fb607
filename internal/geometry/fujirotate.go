// Package geometry finishes a demosaiced image: Fuji diagonal-sensor
// de-rotation, anamorphic pixel-aspect correction, and the
// flip/axis-swap remap applied at write time.
package geometry

import (
	"math"

	"github.com/tacusci/rawforge/internal/rawimage"
)

// RotateFuji de-rotates a Fuji diagonal sensor's working image by
// 45 degrees via bilinear resampling into a new fujiWidth x height
// grid, the shape every Fuji S-series/X-series sensor with a rotated
// photosite grid needs before the output looks upright.
func RotateFuji(w *rawimage.Working, fujiWidth int) *rawimage.Working {
	height := (w.Width+w.Height)/2 - fujiWidth/2
	if height <= 0 {
		height = w.Height
	}
	out := rawimage.NewWorking(fujiWidth, height)

	srcCx, srcCy := float64(w.Width)/2, float64(w.Height)/2
	const angle = math.Pi / 4
	cos, sin := math.Cos(angle), math.Sin(angle)

	dstCx, dstCy := float64(fujiWidth)/2, float64(height)/2
	for y := 0; y < height; y++ {
		for x := 0; x < fujiWidth; x++ {
			dx := float64(x) - dstCx
			dy := float64(y) - dstCy
			sx := dx*cos - dy*sin + srcCx
			sy := dx*sin + dy*cos + srcCy
			for c := 0; c < 4; c++ {
				out.Set(x, y, c, bilinearWorkingSample(w, c, sx, sy))
			}
		}
	}
	return out
}

func bilinearWorkingSample(w *rawimage.Working, channel int, x, y float64) uint16 {
	if x < 0 || y < 0 || x > float64(w.Width-1) || y > float64(w.Height-1) {
		return 0
	}
	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, w.Width-1), min(y0+1, w.Height-1)
	fx, fy := x-float64(x0), y-float64(y0)

	top := float64(w.At(x0, y0, channel))*(1-fx) + float64(w.At(x1, y0, channel))*fx
	bottom := float64(w.At(x0, y1, channel))*(1-fx) + float64(w.At(x1, y1, channel))*fx
	v := top*(1-fy) + bottom*fy
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v + 0.5)
}
