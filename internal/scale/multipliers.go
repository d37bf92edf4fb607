// Package scale computes white-balance multipliers, applies the
// black-subtract/scale/clip pass, resamples color planes for
// chromatic aberration, and runs the optional wavelet denoiser.
package scale

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// GrayBox restricts auto white balance sampling to a sub-rectangle;
// the zero value means "the whole image".
type GrayBox struct {
	Left, Top, Width, Height int
}

// Source selects which of the four multiplier strategies to use.
type Source int

const (
	SourceAuto Source = iota
	SourceCamera
	SourceUser
	SourceMatrix
)

// Multipliers computes the four-channel white balance multiplier per
// spec §4.E from the one source selected: user-supplied values, camera
// as-shot (falling back to the color matrix's inverse row sums when
// the camera values are all zero), the inverse row sums directly, or
// by default auto white balance (from the gray box, skipping
// near-saturated 8x8 blocks).
func Multipliers(d *camera.Descriptor, source Source, userMul [4]float64, box GrayBox, working *rawimage.Working, clipHighlights bool) [4]float64 {
	var m [4]float64
	switch source {
	case SourceUser:
		m = userMul
	case SourceCamera:
		if d.CameraMul != ([4]float64{}) {
			m = d.CameraMul
		} else {
			m = inverseRowSums(d.ColorMatrix)
		}
	case SourceMatrix:
		m = inverseRowSums(d.ColorMatrix)
	default:
		m = autoWhiteBalance(working, box)
	}
	return normalize(m, clipHighlights)
}

// inverseRowSums derives a fallback multiplier set from the
// XYZ-to-camera color matrix (rows of 3 columns): the inverse of each
// row's sum, the multiplier dcraw falls back to when no as-shot data
// exists.
func inverseRowSums(matrix [12]float64) [4]float64 {
	var m [4]float64
	for c := 0; c < 3; c++ {
		sum := matrix[c*3] + matrix[c*3+1] + matrix[c*3+2]
		if sum != 0 {
			m[c] = 1 / sum
		} else {
			m[c] = 1
		}
	}
	m[3] = m[1] // second green defaults to the first
	return m
}

const autoWBSaturationThreshold = 0xfff0

// autoWhiteBalance sums each channel over the gray box, in 8x8 blocks,
// skipping any block that contains a sample at or above the
// near-saturated threshold, then returns the inverse of each
// channel's mean (sample count over sum) as its multiplier.
func autoWhiteBalance(w *rawimage.Working, box GrayBox) [4]float64 {
	left, top, width, height := box.Left, box.Top, box.Width, box.Height
	if width == 0 {
		width = w.Width
	}
	if height == 0 {
		height = w.Height
	}

	var sum [4]float64
	var count [4]float64

	for by := top; by < top+height; by += 8 {
		for bx := left; bx < left+width; bx += 8 {
			if blockSaturated(w, by, bx, min(bx+8, left+width), min(by+8, top+height)) {
				continue
			}
			for y := by; y < by+8 && y < top+height && y < w.Height; y++ {
				for x := bx; x < bx+8 && x < left+width && x < w.Width; x++ {
					px := w.Pixel(x, y)
					for c := 0; c < 4; c++ {
						sum[c] += float64(px[c])
						count[c]++
					}
				}
			}
		}
	}

	var m [4]float64
	for c := 0; c < 4; c++ {
		if count[c] > 0 && sum[c] > 0 {
			m[c] = count[c] / sum[c]
		} else {
			m[c] = 1
		}
	}
	return m
}

// blockSaturated reports whether any sample in the 8-row band
// starting at by, across [left, right), contains a near-saturated
// value in any channel.
func blockSaturated(w *rawimage.Working, by, left, right, bottom int) bool {
	for y := by; y < by+8 && y < bottom && y < w.Height; y++ {
		for x := left; x < right && x < w.Width; x++ {
			px := w.Pixel(x, y)
			for c := 0; c < 4; c++ {
				if px[c] >= autoWBSaturationThreshold {
					return true
				}
			}
		}
	}
	return false
}

// normalize scales m so the smallest multiplier is 1, or the largest
// if clipHighlights is set (the "normalize so nothing clips until
// requested" rule).
func normalize(m [4]float64, clipHighlights bool) [4]float64 {
	ref := m[0]
	for _, v := range m {
		if v == 0 {
			continue
		}
		if clipHighlights {
			if v > ref {
				ref = v
			}
		} else {
			if ref == 0 || v < ref {
				ref = v
			}
		}
	}
	if ref == 0 {
		ref = 1
	}
	out := m
	for i := range out {
		out[i] /= ref
	}
	return out
}
