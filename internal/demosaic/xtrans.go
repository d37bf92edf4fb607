package demosaic

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// xtransChannelAt looks up the CFA channel for a 6x6-tiled sensor,
// reading 2 bits per cell out of the descriptor's FilterPattern the
// same way channelAt does for a 2x2 Bayer pattern, just modulo 6
// instead of modulo 2.
func xtransChannelAt(d *camera.Descriptor, x, y int) int {
	cell := (y%6)*6 + (x % 6)
	shift := uint(cell * 2 % 32)
	return int((d.FilterPattern >> shift) & 3)
}

// XTrans is Markesteijn's algorithm reduced to a single-pass,
// 8-direction homogeneity-directed reconstruction over the 6x6 tile:
// green is interpolated along all 8 compass directions at half the
// step AHD uses for Bayer (X-Trans has roughly twice the green
// sampling density), the most homogeneous direction wins, then red
// and blue are filled from color differences the way AHD and PPG do.
func XTrans(plane *rawimage.Plane, d *camera.Descriptor) *rawimage.Working {
	w := rawimage.NewWorking(plane.Width, plane.Height)

	green := make([]uint16, plane.Width*plane.Height)
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			if xtransChannelAt(d, x, y) == 1 {
				green[y*plane.Width+x] = plane.At(x, y, 0)
			}
		}
	}
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			if xtransChannelAt(d, x, y) == 1 {
				continue
			}
			green[y*plane.Width+x] = xtransGreenAt(plane, d, green, x, y)
		}
	}

	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			native := xtransChannelAt(d, x, y)
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
				px[c] = xtransDifferenceFill(plane, d, green, x, y, c)
			}
			w.SetPixel(x, y, px)
		}
	}
	return w
}

var xtransDirections = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

// xtransGreenAt picks, among the 8 compass directions, the nearest
// already-known green sample in each and averages whichever pair of
// opposite directions has the smallest absolute difference.
func xtransGreenAt(plane *rawimage.Plane, d *camera.Descriptor, green []uint16, x, y int) uint16 {
	var found [8]ppgSampleResult
	for i, dir := range xtransDirections {
		found[i] = xtransNearestGreen(plane, d, green, x, y, dir[0], dir[1])
	}

	bestDiff := -1
	bestSum, bestCount := 0, 0
	for i := 0; i < 4; i++ {
		a, b := found[i*2], found[i*2+1]
		if !a.ok || !b.ok {
			continue
		}
		d := absDiff(a.v, b.v)
		if bestDiff == -1 || d < bestDiff {
			bestDiff = d
			bestSum = a.v + b.v
			bestCount = 2
		}
	}
	if bestCount == 0 {
		var sum, count int
		for _, f := range found {
			if f.ok {
				sum += f.v
				count++
			}
		}
		if count == 0 {
			return plane.At(x, y, 0)
		}
		return uint16(sum / count)
	}
	return uint16(bestSum / bestCount)
}

// xtransNearestGreen walks up to 3 cells along (dx, dy) looking for
// the nearest cell whose CFA channel is green.
func xtransNearestGreen(plane *rawimage.Plane, d *camera.Descriptor, green []uint16, x, y, dx, dy int) ppgSampleResult {
	for step := 1; step <= 3; step++ {
		xx, yy := x+dx*step, y+dy*step
		if xx < 0 || xx >= plane.Width || yy < 0 || yy >= plane.Height {
			return ppgSampleResult{}
		}
		if xtransChannelAt(d, xx, yy) == 1 {
			return ppgSampleResult{v: int(green[yy*plane.Width+xx]), ok: true}
		}
	}
	return ppgSampleResult{}
}

func xtransDifferenceFill(plane *rawimage.Plane, d *camera.Descriptor, green []uint16, x, y, channel int) uint16 {
	var sum, count int
	for r := 1; r <= 2 && count == 0; r++ {
		for dy := -r; dy <= r; dy++ {
			yy := y + dy
			if yy < 0 || yy >= plane.Height {
				continue
			}
			for dx := -r; dx <= r; dx++ {
				xx := x + dx
				if xx < 0 || xx >= plane.Width {
					continue
				}
				if xtransChannelAt(d, xx, yy) != channel {
					continue
				}
				diff := int(plane.At(xx, yy, 0)) - int(green[yy*plane.Width+xx])
				sum += diff
				count++
			}
		}
	}
	g := int(green[y*plane.Width+x])
	if count == 0 {
		return clampUint16(g)
	}
	return clampUint16(g + sum/count)
}
