package demosaic

import (
	"math"
	"sync"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// AHD implements adaptive homogeneity-directed interpolation: green is
// interpolated horizontally and vertically in independent passes (run
// concurrently, since neither depends on the other), both candidates
// are converted to a perceptual L*a*b* triple through the camera's
// color matrix, a homogeneity map is built from each candidate's
// agreement with its 4 neighbors, and the more homogeneous direction
// wins per pixel. Red and blue are filled afterward from the chosen
// green plane.
func AHD(plane *rawimage.Plane, d *camera.Descriptor) *rawimage.Working {
	w := rawimage.NewWorking(plane.Width, plane.Height)

	var horiz, vert []uint16
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		horiz = ahdInterpolateGreen(plane, d, true)
	}()
	go func() {
		defer wg.Done()
		vert = ahdInterpolateGreen(plane, d, false)
	}()
	wg.Wait()

	labH := ahdToLab(plane, d, horiz)
	labV := ahdToLab(plane, d, vert)

	homH := ahdHomogeneity(labH, plane.Width, plane.Height)
	homV := ahdHomogeneity(labV, plane.Width, plane.Height)

	green := make([]uint16, plane.Width*plane.Height)
	for i := range green {
		if channelAtIndex(d, plane.Width, i) == 1 {
			green[i] = horiz[i]
			continue
		}
		if homH[i] <= homV[i] {
			green[i] = horiz[i]
		} else {
			green[i] = vert[i]
		}
	}

	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			native := channelAt(d, x, y)
			var px [4]uint16
			g := green[y*plane.Width+x]
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

func channelAtIndex(d *camera.Descriptor, width, i int) int {
	return channelAt(d, i%width, i/width)
}

func ahdInterpolateGreen(plane *rawimage.Plane, d *camera.Descriptor, horizontal bool) []uint16 {
	out := make([]uint16, plane.Width*plane.Height)
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			if channelAt(d, x, y) == 1 {
				out[y*plane.Width+x] = plane.At(x, y, 0)
				continue
			}
			var a, b ppgSampleResult
			if horizontal {
				a, b = ppgSample(plane, x-1, y), ppgSample(plane, x+1, y)
			} else {
				a, b = ppgSample(plane, x, y-1), ppgSample(plane, x, y+1)
			}
			switch {
			case a.ok && b.ok:
				out[y*plane.Width+x] = avg2(a.v, b.v)
			case a.ok:
				out[y*plane.Width+x] = uint16(a.v)
			case b.ok:
				out[y*plane.Width+x] = uint16(b.v)
			}
		}
	}
	return out
}

type labTriple struct{ l, a, b float64 }

// ahdToLab converts the native-channel sample plus the interpolated
// green at each pixel into an approximate L*a*b* triple via the
// descriptor's camera-to-XYZ color matrix, falling back to an
// identity matrix when the descriptor carries none.
func ahdToLab(plane *rawimage.Plane, d *camera.Descriptor, green []uint16) []labTriple {
	out := make([]labTriple, plane.Width*plane.Height)
	m := d.ColorMatrix
	hasMatrix := d.HasColorMatrix
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			native := channelAt(d, x, y)
			v := float64(plane.At(x, y, 0))
			g := float64(green[y*plane.Width+x])
			var r, gg, bl float64
			switch native {
			case 0:
				r, gg, bl = v, g, g
			case 2:
				r, gg, bl = g, g, v
			default:
				r, gg, bl = g, g, g
			}
			var X, Y, Z float64
			if hasMatrix {
				X = m[0]*r + m[1]*gg + m[2]*bl
				Y = m[3]*r + m[4]*gg + m[5]*bl
				Z = m[6]*r + m[7]*gg + m[8]*bl
			} else {
				X, Y, Z = r, gg, bl
			}
			out[y*plane.Width+x] = xyzToLab(X, Y, Z)
		}
	}
	return out
}

func xyzToLab(X, Y, Z float64) labTriple {
	const (
		xn = 0.9505 * 65535
		yn = 1.0000 * 65535
		zn = 1.0890 * 65535
	)
	fx, fy, fz := labF(X/xn), labF(Y/yn), labF(Z/zn)
	return labTriple{
		l: 116*fy - 16,
		a: 500 * (fx - fy),
		b: 200 * (fy - fz),
	}
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// ahdHomogeneity scores each pixel by how many of its 4 neighbors lie
// within a fixed summed L/a/b distance (below 8) of it, returned
// negated so a lower score means more homogeneous: the
// direction-agreement heuristic AHD uses to choose horizontal vs
// vertical green.
func ahdHomogeneity(lab []labTriple, width, height int) []int {
	out := make([]int, len(lab))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			center := lab[i]
			score := 0
			for _, off := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				xx, yy := x+off[0], y+off[1]
				if xx < 0 || xx >= width || yy < 0 || yy >= height {
					continue
				}
				n := lab[yy*width+xx]
				dl := math.Abs(center.l - n.l)
				da := math.Abs(center.a - n.a)
				db := math.Abs(center.b - n.b)
				if dl+da+db < 8 {
					score++
				}
			}
			out[i] = -score
		}
	}
	return out
}
