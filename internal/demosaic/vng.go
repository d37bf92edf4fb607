package demosaic

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// vngDirection is one of the 8 compass directions VNG gradients are
// measured along, offset in (dx, dy) steps of 2 (the CFA repeat
// period) so every step lands on a same-color sample.
type vngDirection struct{ dx, dy int }

var vngDirections = [8]vngDirection{
	{0, -2}, {2, -2}, {2, 0}, {2, 2},
	{0, 2}, {-2, 2}, {-2, 0}, {-2, -2},
}

// VNG approximates the variable-number-of-gradients algorithm: for
// every pixel it measures 8 directional gradients between same-color
// neighbors two cells away, keeps every direction within half the
// min-max spread of the darkest gradient, and averages the
// missing-channel samples found along the surviving directions.
func VNG(plane *rawimage.Plane, d *camera.Descriptor) *rawimage.Working {
	w := rawimage.NewWorking(plane.Width, plane.Height)

	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			native := channelAt(d, x, y)
			v := plane.At(x, y, 0)
			var px [4]uint16
			px[native] = v

			gradients, ok := vngGradients(plane, x, y)
			for c := 0; c < 3; c++ {
				if c == native {
					continue
				}
				if ok {
					px[c] = vngDirectedAverage(plane, d, x, y, c, gradients)
				} else {
					px[c] = bilinearNeighborAverage(plane, d, x, y, c)
				}
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

// vngGradients returns the |center - neighbor| gradient for each of
// the 8 directions, or ok=false if (x, y) is too close to an edge for
// every direction to be sampled.
func vngGradients(plane *rawimage.Plane, x, y int) ([8]int, bool) {
	var out [8]int
	center := int(plane.At(x, y, 0))
	for i, dir := range vngDirections {
		xx, yy := x+dir.dx, y+dir.dy
		if xx < 0 || xx >= plane.Width || yy < 0 || yy >= plane.Height {
			return out, false
		}
		n := int(plane.At(xx, yy, 0))
		g := center - n
		if g < 0 {
			g = -g
		}
		out[i] = g
	}
	return out, true
}

// vngDirectedAverage averages the missing-channel sample nearest each
// surviving direction (gradient <= min + (max-min)/2), falling back to
// a plain 3x3 average if no same-color sample lies along any
// surviving direction.
func vngDirectedAverage(plane *rawimage.Plane, d *camera.Descriptor, x, y, channel int, gradients [8]int) uint16 {
	min, max := gradients[0], gradients[0]
	for _, g := range gradients {
		if g < min {
			min = g
		}
		if g > max {
			max = g
		}
	}
	threshold := min + (max-min)/2

	var sum, count uint32
	for i, dir := range vngDirections {
		if gradients[i] > threshold {
			continue
		}
		// Scan the half-step and full-step cells along this direction
		// for a same-color sample.
		for _, step := range [2]float64{0.5, 1.0} {
			xx := x + int(float64(dir.dx)*step)
			yy := y + int(float64(dir.dy)*step)
			if xx < 0 || xx >= plane.Width || yy < 0 || yy >= plane.Height {
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
		return bilinearNeighborAverage(plane, d, x, y, channel)
	}
	return uint16(sum / count)
}
