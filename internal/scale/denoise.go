package scale

import "github.com/tacusci/rawforge/internal/rawimage"

// Denoise runs a hat-transform wavelet decomposition over each
// channel plane, soft-thresholds each level against a per-level noise
// weight derived from threshold, then reconstructs. Channels 1 and 3
// (the two green records) are rebalanced to their shared mean after
// reconstruction, the G1/G3 rebalance spec §4.E calls for.
func Denoise(w *rawimage.Working, threshold float64) {
	if threshold <= 0 {
		return
	}
	for c := 0; c < 4; c++ {
		plane := extractChannel(w, c)
		denoisePlane(plane, w.Width, w.Height, threshold)
		storeChannel(w, c, plane)
	}
	rebalanceGreens(w)
}

func extractChannel(w *rawimage.Working, channel int) []float64 {
	out := make([]float64, w.Width*w.Height)
	for i := range out {
		out[i] = float64(w.Data[i*4+channel])
	}
	return out
}

func storeChannel(w *rawimage.Working, channel int, plane []float64) {
	for i, v := range plane {
		w.Data[i*4+channel] = clip16(v)
	}
}

const hatLevels = 4

// denoisePlane runs a dyadic hat-transform (a 5-tap [1 4 6 4 1]/16
// low-pass at doubling scales) pyramid, soft-thresholds the
// level-to-level differences, and adds the thresholded detail back
// onto the coarsest approximation.
func denoisePlane(plane []float64, width, height int, threshold float64) {
	approx := make([]float64, len(plane))
	copy(approx, plane)

	details := make([][]float64, 0, hatLevels)
	for level := 0; level < hatLevels; level++ {
		step := 1 << uint(level)
		smoothed := hatSmooth(approx, width, height, step)
		detail := make([]float64, len(approx))
		for i := range detail {
			detail[i] = approx[i] - smoothed[i]
		}
		noiseWeight := threshold / float64(level+1)
		softThreshold(detail, noiseWeight)
		details = append(details, detail)
		approx = smoothed
	}

	result := make([]float64, len(plane))
	copy(result, approx)
	for _, d := range details {
		for i := range result {
			result[i] += d[i]
		}
	}
	copy(plane, result)
}

// hatSmooth applies a separable 5-tap hat kernel at the given dyadic
// step, the "a trous" stationary wavelet transform's smoothing pass.
func hatSmooth(src []float64, width, height, step int) []float64 {
	tmp := make([]float64, len(src))
	out := make([]float64, len(src))
	weights := [5]float64{1, 4, 6, 4, 1}
	const norm = 16.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k := -2; k <= 2; k++ {
				xx := clampInt(x+k*step, 0, width-1)
				sum += src[y*width+xx] * weights[k+2]
			}
			tmp[y*width+x] = sum / norm
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k := -2; k <= 2; k++ {
				yy := clampInt(y+k*step, 0, height-1)
				sum += tmp[yy*width+x] * weights[k+2]
			}
			out[y*width+x] = sum / norm
		}
	}
	return out
}

func softThreshold(detail []float64, noiseWeight float64) {
	for i, v := range detail {
		switch {
		case v > noiseWeight:
			detail[i] = v - noiseWeight
		case v < -noiseWeight:
			detail[i] = v + noiseWeight
		default:
			detail[i] = 0
		}
	}
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

// rebalanceGreens nudges the secondary green channel's mean to match
// the primary green channel's mean, undoing any denoise-induced drift
// between the two Bayer green records.
func rebalanceGreens(w *rawimage.Working) {
	var sumG1, sumG2 float64
	n := w.Width * w.Height
	for i := 0; i < n; i++ {
		sumG1 += float64(w.Data[i*4+1])
		sumG2 += float64(w.Data[i*4+3])
	}
	if n == 0 || sumG2 == 0 {
		return
	}
	ratio := sumG1 / sumG2
	for i := 0; i < n; i++ {
		v := float64(w.Data[i*4+3]) * ratio
		w.Data[i*4+3] = clip16(v)
	}
}
