package demosaic

import "github.com/tacusci/rawforge/internal/rawimage"

// MedianFilter runs up to passes rounds of a 9-median (3x3 window,
// edge-clamped) over the R-G and B-G color-difference planes, the
// post-demosaic artifact cleanup spec describes: it suppresses the
// maze/zipper pattern any directional demosaic algorithm can leave
// along sharp edges, without touching the green channel itself.
func MedianFilter(w *rawimage.Working, passes int) {
	for p := 0; p < passes; p++ {
		diffR := colorDifference(w, 0)
		diffB := colorDifference(w, 2)
		medianR := median3x3(diffR, w.Width, w.Height)
		medianB := median3x3(diffB, w.Width, w.Height)
		applyColorDifference(w, 0, medianR)
		applyColorDifference(w, 2, medianB)
	}
}

func colorDifference(w *rawimage.Working, channel int) []int32 {
	out := make([]int32, w.Width*w.Height)
	for i := range out {
		out[i] = int32(w.Data[i*4+channel]) - int32(w.Data[i*4+1])
	}
	return out
}

func applyColorDifference(w *rawimage.Working, channel int, diff []int32) {
	for i, d := range diff {
		v := int32(w.Data[i*4+1]) + d
		w.Data[i*4+channel] = clampUint16(int(v))
	}
}

// median3x3 replaces every sample with the median of its 3x3
// neighborhood, clamping out-of-bounds reads to the nearest edge
// pixel rather than shrinking the window.
func median3x3(src []int32, width, height int) []int32 {
	out := make([]int32, len(src))
	var window [9]int32
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				yy := clampInt(y+dy, 0, height-1)
				for dx := -1; dx <= 1; dx++ {
					xx := clampInt(x+dx, 0, width-1)
					window[n] = src[yy*width+xx]
					n++
				}
			}
			out[y*width+x] = median9(window)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func median9(w [9]int32) int32 {
	sorted := w
	for i := 1; i < len(sorted); i++ {
		v := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > v {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = v
	}
	return sorted[4]
}
