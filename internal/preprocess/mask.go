package preprocess

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// MaskRect is one of up to 8 configured masked-pixel rectangles,
// coordinates in raw-plane space.
type MaskRect struct {
	Left, Top, Width, Height int
}

const maxMaskRects = 8

// PerChannelBlack holds the per-CFA-channel measured black level and
// whether any mask rectangle contributed; their average is what
// masked-pixel measurement writes to the descriptor's single BlackLevel.
type PerChannelBlack struct {
	Channel  [4]int
	Hit      bool // true once at least one mask rectangle contributed
}

// MeasureMaskedBlack accumulates per-channel sums and counts from
// every pixel strictly inside each configured rectangle. If fewer than
// a quarter of the sampled pixels are zero (the signal that these
// really are opaque masked photosites, not a misconfigured rectangle),
// it returns the measured per-channel means and resets the
// descriptor's BlackLevel to their average.
func MeasureMaskedBlack(plane *rawimage.Plane, d *camera.Descriptor, rects []MaskRect) PerChannelBlack {
	if len(rects) > maxMaskRects {
		rects = rects[:maxMaskRects]
	}

	var sum [4]int64
	var count [4]int64
	var zero, total int64

	for _, r := range rects {
		for y := r.Top + 1; y < r.Top+r.Height-1; y++ {
			if y < 0 || y >= plane.Height {
				continue
			}
			for x := r.Left + 1; x < r.Left+r.Width-1; x++ {
				if x < 0 || x >= plane.Width {
					continue
				}
				v := plane.At(x, y, 0)
				ch := channelAt(d, x, y)
				sum[ch] += int64(v)
				count[ch]++
				total++
				if v == 0 {
					zero++
				}
			}
		}
	}

	result := PerChannelBlack{}
	if total == 0 || zero*4 >= total {
		return result
	}

	var aggregate int64
	var nonZeroChannels int64
	for c := 0; c < 4; c++ {
		if count[c] == 0 {
			continue
		}
		mean := int(sum[c] / count[c])
		result.Channel[c] = mean
		aggregate += int64(mean)
		nonZeroChannels++
	}
	if nonZeroChannels > 0 {
		d.BlackLevel = int(aggregate / nonZeroChannels)
	}
	result.Hit = true
	return result
}

// Crop removes the masked border from plane, returning a new plane
// restricted to the active rectangle.
func Crop(plane *rawimage.Plane, active camera.Rect) *rawimage.Plane {
	out := rawimage.NewPlane(active.Width, active.Height, plane.Channels)
	for y := 0; y < active.Height; y++ {
		for x := 0; x < active.Width; x++ {
			for c := 0; c < plane.Channels; c++ {
				out.Set(x, y, c, plane.At(active.Left+x, active.Top+y, c))
			}
		}
	}
	return out
}
