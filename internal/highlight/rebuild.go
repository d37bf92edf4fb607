package highlight

import "github.com/tacusci/rawforge/internal/rawimage"

const rebuildReferenceChannel = 1

// Rebuild reconstructs clipped red/blue samples from the green
// (reference) channel: it works at quarter scale for speed, computing
// a green/channel ratio at every quarter-scale cell where the channel
// is unclipped, diffusing that ratio outward across cells that have
// no ratio of their own (a box-blur whose radius grows with level),
// then applying the smoothed ratio back only to pixels that actually
// clipped in that channel.
func Rebuild(w *rawimage.Working, max uint16, level int) {
	if level < 1 {
		level = 1
	}
	qw, qh := (w.Width+3)/4, (w.Height+3)/4

	for _, channel := range [2]int{0, 2} {
		ratio, known := quarterScaleRatio(w, channel, qw, qh, max)
		diffuseRatio(ratio, known, qw, qh, level)
		applyRebuiltRatio(w, channel, ratio, qw, qh, max)
	}
}

// quarterScaleRatio averages each 4x4 block's reference/channel ratio
// wherever neither sample in the block clipped.
func quarterScaleRatio(w *rawimage.Working, channel, qw, qh int, max uint16) ([]float64, []bool) {
	ratio := make([]float64, qw*qh)
	known := make([]bool, qw*qh)

	for qy := 0; qy < qh; qy++ {
		for qx := 0; qx < qw; qx++ {
			var sumRef, sumCh float64
			var n int
			clippedAny := false
			for dy := 0; dy < 4; dy++ {
				y := qy*4 + dy
				if y >= w.Height {
					continue
				}
				for dx := 0; dx < 4; dx++ {
					x := qx*4 + dx
					if x >= w.Width {
						continue
					}
					ref := w.At(x, y, rebuildReferenceChannel)
					ch := w.At(x, y, channel)
					if ch >= max {
						clippedAny = true
						continue
					}
					sumRef += float64(ref)
					sumCh += float64(ch)
					n++
				}
			}
			if !clippedAny && n > 0 && sumCh > 0 {
				ratio[qy*qw+qx] = sumRef / sumCh
				known[qy*qw+qx] = true
			}
		}
	}
	return ratio, known
}

// diffuseRatio fills unknown cells with a box-blur average of known
// neighbors within a radius equal to level, repeating for up to level
// passes and stopping early once a pass fills nothing.
func diffuseRatio(ratio []float64, known []bool, qw, qh, level int) {
	radius := level
	for pass := 0; pass < level; pass++ {
		filledAny := false
		next := make([]float64, len(ratio))
		copy(next, ratio)
		nextKnown := make([]bool, len(known))
		copy(nextKnown, known)

		for y := 0; y < qh; y++ {
			for x := 0; x < qw; x++ {
				if known[y*qw+x] {
					continue
				}
				var sum float64
				var n int
				for dy := -radius; dy <= radius; dy++ {
					yy := y + dy
					if yy < 0 || yy >= qh {
						continue
					}
					for dx := -radius; dx <= radius; dx++ {
						xx := x + dx
						if xx < 0 || xx >= qw {
							continue
						}
						if known[yy*qw+xx] {
							sum += ratio[yy*qw+xx]
							n++
						}
					}
				}
				if n > 0 {
					next[y*qw+x] = sum / float64(n)
					nextKnown[y*qw+x] = true
					filledAny = true
				}
			}
		}
		copy(ratio, next)
		copy(known, nextKnown)
		if !filledAny {
			break
		}
	}
}

// applyRebuiltRatio replaces clipped channel samples with the
// reference sample divided by the smoothed ratio for their
// quarter-scale cell, leaving unclipped samples untouched.
func applyRebuiltRatio(w *rawimage.Working, channel int, ratio []float64, qw, qh int, max uint16) {
	for y := 0; y < w.Height; y++ {
		qy := y / 4
		for x := 0; x < w.Width; x++ {
			if w.At(x, y, channel) < max {
				continue
			}
			qx := x / 4
			r := ratio[qy*qw+qx]
			if r <= 0 {
				continue
			}
			ref := float64(w.At(x, y, rebuildReferenceChannel))
			w.Set(x, y, channel, clampUint16Float(ref/r))
		}
	}
}
