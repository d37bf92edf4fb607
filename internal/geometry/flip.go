package geometry

import "github.com/tacusci/rawforge/internal/rawimage"

// FlipMask bits compose into the only four mask values a sensor
// orientation can actually take (none, 180-degree, and the two
// 90-degree rotations) — a camera never reports a pure single-axis
// mirror, since that would misalign the CFA grid.
const (
	FlipX FlipMask = 1 << iota
	FlipY
	FlipSwap
)

// FlipMask selects an output remap: any combination of FlipX
// (mirror the column axis), FlipY (mirror the row axis), and
// FlipSwap (transpose rows and columns).
type FlipMask int

// Flip writes a new working image whose pixel at (outRow, outCol)
// reads from the source pixel flipIndex maps it to, matching real raw
// converters' remap-on-write convention: the swap bit is applied to
// the output coordinate first, then the row/column mirrors run
// against the (pre-swap) source dimensions, exactly the order and
// dimension convention this kind of remap table always uses.
func Flip(w *rawimage.Working, mask FlipMask) *rawimage.Working {
	if mask == 0 {
		return w
	}
	outWidth, outHeight := w.Width, w.Height
	if mask&FlipSwap != 0 {
		outWidth, outHeight = w.Height, w.Width
	}
	out := rawimage.NewWorking(outWidth, outHeight)

	for outRow := 0; outRow < outHeight; outRow++ {
		for outCol := 0; outCol < outWidth; outCol++ {
			srcRow, srcCol := flipIndex(outRow, outCol, mask, w.Height, w.Width)
			for c := 0; c < 4; c++ {
				out.Set(outCol, outRow, c, w.At(srcCol, srcRow, c))
			}
		}
	}
	return out
}

// flipIndex maps an (outRow, outCol) output position back to the
// (srcRow, srcCol) source position it should read, given the source
// image's own (srcHeight, srcWidth).
func flipIndex(row, col int, mask FlipMask, srcHeight, srcWidth int) (int, int) {
	if mask&FlipSwap != 0 {
		row, col = col, row
	}
	if mask&FlipY != 0 {
		row = srcHeight - 1 - row
	}
	if mask&FlipX != 0 {
		col = srcWidth - 1 - col
	}
	return row, col
}
