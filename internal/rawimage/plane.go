// Package rawimage holds the two pixel-data containers that flow
// through the pipeline: the raw plane produced by a sensor payload
// decoder, and the four-channel working image every stage from
// demosaic onward operates on.
package rawimage

// Plane is the dense raw_width x raw_height array of samples a
// sensor payload decoder fills in. Three-plane Foveon-style sensors
// and other non-mosaic formats use Channels > 1 instead of a mosaic
// pattern.
type Plane struct {
	Width, Height int
	Channels      int
	Data          []uint16 // row-major, Channels samples per pixel
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height, channels int) *Plane {
	if channels < 1 {
		channels = 1
	}
	return &Plane{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]uint16, width*height*channels),
	}
}

// At returns the sample at (x, y, channel).
func (p *Plane) At(x, y, channel int) uint16 {
	return p.Data[(y*p.Width+x)*p.Channels+channel]
}

// Set writes the sample at (x, y, channel).
func (p *Plane) Set(x, y, channel int, v uint16) {
	p.Data[(y*p.Width+x)*p.Channels+channel] = v
}

// Release drops the plane's backing array, per the invariant that the
// raw plane is consumed once demosaicing begins.
func (p *Plane) Release() {
	p.Data = nil
}
