package rawimage

import "fmt"

// Working is the width x height x 4 array every stage from demosaic
// onward reads and writes. Channel 3 is a secondary green used by
// some Bayer algorithms (e.g. PPG, AHD) and is collapsed into channel
// 1 before output.
type Working struct {
	Width, Height int
	Data          []uint16 // row-major, 4 samples per pixel
}

const workingChannels = 4

// NewWorking allocates a zeroed working image. It must only be
// called once the active rectangle is finalized; width and height
// are fixed for the image's lifetime.
func NewWorking(width, height int) *Working {
	return &Working{
		Width:  width,
		Height: height,
		Data:   make([]uint16, width*height*workingChannels),
	}
}

// At returns the sample at (x, y, channel), channel in [0,3].
func (w *Working) At(x, y, channel int) uint16 {
	return w.Data[(y*w.Width+x)*workingChannels+channel]
}

// Set writes the sample at (x, y, channel).
func (w *Working) Set(x, y, channel int, v uint16) {
	w.Data[(y*w.Width+x)*workingChannels+channel] = v
}

// Pixel returns all four channels at (x, y).
func (w *Working) Pixel(x, y int) [4]uint16 {
	i := (y*w.Width + x) * workingChannels
	return [4]uint16{w.Data[i], w.Data[i+1], w.Data[i+2], w.Data[i+3]}
}

// SetPixel writes all four channels at (x, y).
func (w *Working) SetPixel(x, y int, px [4]uint16) {
	i := (y*w.Width + x) * workingChannels
	copy(w.Data[i:i+workingChannels], px[:])
}

// CollapseSecondaryGreen folds channel 3 into channel 1 by averaging,
// the step that must run before output since the output stage only
// ever understands RGB.
func (w *Working) CollapseSecondaryGreen() {
	for i := 0; i < len(w.Data); i += workingChannels {
		g1, g2 := w.Data[i+1], w.Data[i+3]
		w.Data[i+1] = uint16((uint32(g1) + uint32(g2)) / 2)
		w.Data[i+3] = 0
	}
}

// CheckBounds validates the "width <= raw_width - left_margin" style
// invariant against the raw plane dimensions and active-rectangle
// margins it was derived from.
func CheckBounds(w *Working, rawWidth, rawHeight, leftMargin, topMargin int) error {
	if w.Width > rawWidth-leftMargin {
		return fmt.Errorf("rawimage: working width %d exceeds raw_width-left_margin %d", w.Width, rawWidth-leftMargin)
	}
	if w.Height > rawHeight-topMargin {
		return fmt.Errorf("rawimage: working height %d exceeds raw_height-top_margin %d", w.Height, rawHeight-topMargin)
	}
	return nil
}
