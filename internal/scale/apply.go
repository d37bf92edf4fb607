package scale

import "github.com/tacusci/rawforge/internal/rawimage"

// Apply runs the black-subtract/scale/clip pass described in spec
// §4.E: out = clip((in - per_site_black) * m[c] * 65535 /
// (white_level - aggregate_black)). perSiteBlack is indexed the same
// way channelAt would select a CFA channel; passing a flat [4]int with
// all four entries equal reproduces a single aggregate black level.
func Apply(w *rawimage.Working, mul [4]float64, perSiteBlack [4]int, whiteLevel, aggregateBlack int) {
	denom := float64(whiteLevel - aggregateBlack)
	if denom <= 0 {
		denom = 1
	}
	scaleFactor := 65535.0 / denom

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			px := w.Pixel(x, y)
			for c := 0; c < 4; c++ {
				v := float64(int(px[c])-perSiteBlack[c]) * mulFor(mul, c) * scaleFactor
				px[c] = clip16(v)
			}
			w.SetPixel(x, y, px)
		}
	}
}

func mulFor(mul [4]float64, c int) float64 {
	if c == 3 {
		return mul[1] // secondary green shares the primary green multiplier
	}
	return mul[c]
}

func clip16(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
