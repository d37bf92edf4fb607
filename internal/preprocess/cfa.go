// Package preprocess crops masked pixels, measures per-channel black
// levels from them, repairs marked bad pixels, and subtracts an
// optional dark frame, all before scaling begins.
package preprocess

import "github.com/tacusci/rawforge/internal/camera"

// channelAt returns the CFA channel index (0-3) for a Bayer sensor
// pixel at (x, y), reading it out of the packed 2x2 filter pattern the
// same way dcraw's FC macro does. Non-Bayer sensors (X-Trans, linear,
// monochrome) always report channel 0; per-pixel X-Trans channel
// selection belongs to the demosaic stage, which already understands
// the 6x6 layout.
func channelAt(d *camera.Descriptor, x, y int) int {
	if d.CFA != camera.CFABayer {
		return 0
	}
	shift := uint(((y&1)<<1 | (x & 1)) * 2)
	return int((d.FilterPattern >> shift) & 3)
}
