package demosaic

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// PPG implements patterned pixel grouping: green is interpolated
// first using a Hamilton-Adams-style 4-direction gradient score, then
// red and blue are filled from the now-complete green plane via
// color-difference interpolation (constant chroma assumption).
func PPG(plane *rawimage.Plane, d *camera.Descriptor) *rawimage.Working {
	w := rawimage.NewWorking(plane.Width, plane.Height)

	green := ppgInterpolateGreen(plane, d)

	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			native := channelAt(d, x, y)
			g := green[y*plane.Width+x]
			var px [4]uint16
			px[1], px[3] = g, g
			if native == 0 || native == 2 {
				px[native] = plane.At(x, y, 0)
			}
			for _, c := range [2]int{0, 2} {
				if c == native {
					continue
				}
				px[c] = ppgDifferenceFill(plane, d, green, x, y, c)
			}
			w.SetPixel(x, y, px)
		}
	}
	return w
}

// ppgInterpolateGreen scores the horizontal and vertical Laplacian at
// every non-green cell and picks whichever direction has the smaller
// gradient, the classic Hamilton-Adams heuristic.
func ppgInterpolateGreen(plane *rawimage.Plane, d *camera.Descriptor) []uint16 {
	out := make([]uint16, plane.Width*plane.Height)
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			if channelAt(d, x, y) == 1 {
				out[y*plane.Width+x] = plane.At(x, y, 0)
				continue
			}
			out[y*plane.Width+x] = ppgGreenAt(plane, x, y)
		}
	}
	return out
}

func ppgGreenAt(plane *rawimage.Plane, x, y int) uint16 {
	left, right := ppgSample(plane, x-1, y), ppgSample(plane, x+1, y)
	top, bottom := ppgSample(plane, x, y-1), ppgSample(plane, x, y+1)

	hGrad := absDiff(left.v, right.v)
	vGrad := absDiff(top.v, bottom.v)
	if !left.ok || !right.ok {
		hGrad = 1 << 30
	}
	if !top.ok || !bottom.ok {
		vGrad = 1 << 30
	}

	switch {
	case hGrad < vGrad:
		return avg2(left.v, right.v)
	case vGrad < hGrad:
		return avg2(top.v, bottom.v)
	case left.ok && right.ok && top.ok && bottom.ok:
		return avg4(left.v, right.v, top.v, bottom.v)
	default:
		// Corner: neither direction is complete, so average whichever
		// neighbors exist.
		var sum, n int
		for _, s := range [4]ppgSampleResult{left, right, top, bottom} {
			if s.ok {
				sum += s.v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return uint16(sum / n)
	}
}

type ppgSampleResult struct {
	v  int
	ok bool
}

func ppgSample(plane *rawimage.Plane, x, y int) ppgSampleResult {
	if x < 0 || x >= plane.Width || y < 0 || y >= plane.Height {
		return ppgSampleResult{}
	}
	return ppgSampleResult{v: int(plane.At(x, y, 0)), ok: true}
}

// ppgDifferenceFill fills channel c (red or blue) at (x, y) using the
// mean color-minus-green difference of the nearest same-color
// neighbors, added back onto this pixel's own green value.
func ppgDifferenceFill(plane *rawimage.Plane, d *camera.Descriptor, green []uint16, x, y, channel int) uint16 {
	var sum, count int
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
			diff := int(plane.At(xx, yy, 0)) - int(green[yy*plane.Width+xx])
			sum += diff
			count++
		}
	}
	g := int(green[y*plane.Width+x])
	if count == 0 {
		return clampUint16(g)
	}
	return clampUint16(g + sum/count)
}

func absDiff(a, b int) int {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func avg2(a, b int) uint16 { return uint16((a + b) / 2) }
func avg4(a, b, c, e int) uint16 {
	return uint16((a + b + c + e) / 4)
}

func clampUint16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
