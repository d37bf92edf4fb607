// Package highlight recovers detail in samples clipped at the
// sensor's saturation point: plain clip, unclip, blend, and rebuild.
package highlight

import "github.com/tacusci/rawforge/internal/rawimage"

// Mode selects a highlight recovery strategy.
type Mode int

const (
	ModeClip Mode = iota
	ModeUnclip
	ModeBlend
	ModeRebuild
)

// Run applies the selected mode in place over w, using max as both
// the saturation point and (in clip mode) the output ceiling.
func Run(w *rawimage.Working, mode Mode, max uint16, rebuildLevel int) {
	switch mode {
	case ModeUnclip:
		Unclip(w)
	case ModeBlend:
		Blend(w, max)
	case ModeRebuild:
		Rebuild(w, max, rebuildLevel)
	default:
		Clip(w, max)
	}
}

// Clip hard-limits every sample to max, the baseline mode every other
// mode is compared against.
func Clip(w *rawimage.Working, max uint16) {
	for i, v := range w.Data {
		if v > max {
			w.Data[i] = max
		}
	}
}

// Unclip leaves samples above max untouched, trusting the sensor's
// reported values past the nominal saturation point.
func Unclip(w *rawimage.Working) {}
