package highlight

import (
	"math"

	"github.com/tacusci/rawforge/internal/rawimage"
)

// blendBasis is the fixed orthonormal basis blend mode projects every
// pixel into: e0 is the gray (luminance) axis, e1 and e2 span its
// orthogonal complement and carry chroma. Any orthonormal complement
// works; this one is the standard R-G/R+G-2B construction.
var blendBasis = [3][3]float64{
	{0.5773502691896258, 0.5773502691896258, 0.5773502691896258},
	{0.7071067811865475, -0.7071067811865475, 0},
	{0.4082482904638631, 0.4082482904638631, -0.8164965809277261},
}

// Blend decomposes each pixel's R/G/B triple into the fixed
// orthonormal basis above, then rescales the chroma coefficients
// (the projections onto e1 and e2 — "chroma channels 1..N-1" in the
// 3-axis basis, resolving the spec's ambiguous accumulator index as
// the sum over every non-luminance axis) so their combined magnitude
// matches the clipped copy's, while keeping the unclipped luminance
// coefficient untouched. The result preserves highlight luminance
// without the flat color clipping produces.
func Blend(w *rawimage.Working, max uint16) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			px := w.Pixel(x, y)
			v := [3]float64{float64(px[0]), float64(px[1]), float64(px[2])}
			clipped := [3]float64{clipf(v[0], max), clipf(v[1], max), clipf(v[2], max)}

			a := project(v)
			b := project(clipped)

			chromaA := math.Hypot(a[1], a[2])
			chromaB := math.Hypot(b[1], b[2])
			ratio := 1.0
			if chromaA > 0 {
				ratio = chromaB / chromaA
			}

			out := reconstruct([3]float64{a[0], a[1] * ratio, a[2] * ratio})
			px[0] = clampUint16Float(out[0])
			px[1] = clampUint16Float(out[1])
			px[2] = clampUint16Float(out[2])
			w.SetPixel(x, y, px)
		}
	}
}

func project(v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = blendBasis[i][0]*v[0] + blendBasis[i][1]*v[1] + blendBasis[i][2]*v[2]
	}
	return out
}

func reconstruct(coeff [3]float64) [3]float64 {
	var out [3]float64
	for c := 0; c < 3; c++ {
		var sum float64
		for i := 0; i < 3; i++ {
			sum += blendBasis[i][c] * coeff[i]
		}
		out[c] = sum
	}
	return out
}

func clipf(v float64, max uint16) float64 {
	if v > float64(max) {
		return float64(max)
	}
	return v
}

func clampUint16Float(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v + 0.5)
}
