package scale

import "github.com/tacusci/rawforge/internal/rawimage"

// ChromaticMultipliers holds the per-axis, per-channel resample
// factors a chromatic-aberration correction applies: RowRed/RowBlue
// scale the row (vertical) axis, ColRed/ColBlue the column (horizontal)
// axis, matching the two-pass row-then-column correction most raw
// converters expose as four independent knobs.
type ChromaticMultipliers struct {
	RowRed, RowBlue float64
	ColRed, ColBlue float64
}

// CorrectChromaticAberration independently bilinear-resamples the red
// and blue planes along the row and column axes by the configured
// multipliers, leaving green untouched (the channel chromatic
// aberration is defined relative to).
func CorrectChromaticAberration(w *rawimage.Working, m ChromaticMultipliers) {
	if m == (ChromaticMultipliers{}) {
		return
	}
	resampleChannel(w, 0, m.RowRed, m.ColRed)
	resampleChannel(w, 2, m.RowBlue, m.ColBlue)
}

func resampleChannel(w *rawimage.Working, channel int, rowMul, colMul float64) {
	if rowMul == 0 {
		rowMul = 1
	}
	if colMul == 0 {
		colMul = 1
	}
	src := make([]uint16, w.Width*w.Height)
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			src[y*w.Width+x] = w.At(x, y, channel)
		}
	}

	cx, cy := float64(w.Width)/2, float64(w.Height)/2
	for y := 0; y < w.Height; y++ {
		sy := cy + (float64(y)-cy)*rowMul
		for x := 0; x < w.Width; x++ {
			sx := cx + (float64(x)-cx)*colMul
			w.Set(x, y, channel, bilinearSample(src, w.Width, w.Height, sx, sy))
		}
	}
}

func bilinearSample(data []uint16, width, height int, x, y float64) uint16 {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > float64(width-1) {
		x = float64(width - 1)
	}
	if y > float64(height-1) {
		y = float64(height - 1)
	}
	x0 := int(x)
	y0 := int(y)
	x1 := min(x0+1, width-1)
	y1 := min(y0+1, height-1)
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := float64(data[y0*width+x0])*(1-fx) + float64(data[y0*width+x1])*fx
	bottom := float64(data[y1*width+x0])*(1-fx) + float64(data[y1*width+x1])*fx
	v := top*(1-fy) + bottom*fy
	return clip16(v)
}
