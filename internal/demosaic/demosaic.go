// Package demosaic reconstructs full RGB (or RGBG) pixels from a
// single-channel CFA raw plane: bilinear, VNG, PPG, AHD, and an
// X-Trans-aware variant, plus a shared post-demosaic median filter.
package demosaic

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// Algorithm selects which reconstruction pass Run uses.
type Algorithm int

const (
	AlgorithmBilinear Algorithm = iota
	AlgorithmVNG
	AlgorithmPPG
	AlgorithmAHD
	AlgorithmXTrans
)

// Run demosaics plane into a working image using the selected
// algorithm, dispatching on the descriptor's CFA kind the way every
// other family-keyed stage in this module does.
func Run(plane *rawimage.Plane, d *camera.Descriptor, algo Algorithm) *rawimage.Working {
	if d.CFA == camera.CFAXTrans {
		return XTrans(plane, d)
	}
	switch algo {
	case AlgorithmVNG:
		return VNG(plane, d)
	case AlgorithmPPG:
		return PPG(plane, d)
	case AlgorithmAHD:
		return AHD(plane, d)
	default:
		return Bilinear(plane, d)
	}
}

// channelAt returns the CFA channel (0=R,1=G,2=B,3=G2) at (x,y) for a
// standard 2x2 Bayer pattern packed into the descriptor's
// FilterPattern field.
func channelAt(d *camera.Descriptor, x, y int) int {
	shift := uint(((y&1)<<1 | (x & 1)) * 2)
	return int((d.FilterPattern >> shift) & 3)
}
