package colorspace

// histogramBuckets matches dcraw-family converters' traditional
// per-channel luminance histogram resolution: coarse enough to be
// cheap, fine enough for the percentile search auto-brightness needs.
const histogramBuckets = 256

// Histogram builds a luminance histogram (average of the first three
// channels, bucketed into histogramBuckets bins across the full
// 16-bit range) over a working image's data.
func Histogram(data []uint16, channels int) [histogramBuckets]int {
	var hist [histogramBuckets]int
	for i := 0; i+channels <= len(data); i += channels {
		var sum uint32
		for c := 0; c < 3 && c < channels; c++ {
			sum += uint32(data[i+c])
		}
		lum := sum / 3
		bucket := int(lum) * histogramBuckets / 65536
		if bucket >= histogramBuckets {
			bucket = histogramBuckets - 1
		}
		hist[bucket]++
	}
	return hist
}

// AutoBrightness picks a linear scale factor so that the given
// percentile of samples (by population, highlights first) lands at
// the target fraction of full scale, the classic "headroom" auto
// exposure heuristic: it walks the histogram from the bright end
// until it has accounted for percentile of all samples, then scales
// so that brightness level maps to the target output level.
func AutoBrightness(hist [histogramBuckets]int, percentile, target float64) float64 {
	var total int
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 1
	}
	threshold := int(float64(total) * (1 - percentile))
	var seen int
	bucket := histogramBuckets - 1
	for i := histogramBuckets - 1; i >= 0; i-- {
		seen += hist[i]
		if seen >= threshold {
			bucket = i
			break
		}
	}
	level := float64(bucket+1) / histogramBuckets
	if level <= 0 {
		return 1
	}
	return target / level
}
