package geometry

import "github.com/tacusci/rawforge/internal/rawimage"

// StretchAspect resizes a working image along its minor axis by
// pixelAspect (the sensor's non-square photosite ratio), leaving the
// major axis untouched. pixelAspect > 1 stretches height; < 1
// stretches width.
func StretchAspect(w *rawimage.Working, pixelAspect float64) *rawimage.Working {
	if pixelAspect == 1 || pixelAspect <= 0 {
		return w
	}
	if pixelAspect > 1 {
		return resizeHeight(w, int(float64(w.Height)*pixelAspect+0.5))
	}
	return resizeWidth(w, int(float64(w.Width)/pixelAspect+0.5))
}

func resizeHeight(w *rawimage.Working, newHeight int) *rawimage.Working {
	out := rawimage.NewWorking(w.Width, newHeight)
	scale := float64(w.Height-1) / float64(maxInt(newHeight-1, 1))
	for y := 0; y < newHeight; y++ {
		sy := float64(y) * scale
		for x := 0; x < w.Width; x++ {
			for c := 0; c < 4; c++ {
				out.Set(x, y, c, bilinearWorkingSample(w, c, float64(x), sy))
			}
		}
	}
	return out
}

func resizeWidth(w *rawimage.Working, newWidth int) *rawimage.Working {
	out := rawimage.NewWorking(newWidth, w.Height)
	scale := float64(w.Width-1) / float64(maxInt(newWidth-1, 1))
	for y := 0; y < w.Height; y++ {
		for x := 0; x < newWidth; x++ {
			sx := float64(x) * scale
			for c := 0; c < 4; c++ {
				out.Set(x, y, c, bilinearWorkingSample(w, c, sx, float64(y)))
			}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
