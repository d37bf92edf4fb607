package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeEightBitLUT reads a byte stream and maps each sample through
// a linearization LUT built from the descriptor's white level (a
// simple linear-to-white-level ramp stands in for camera-specific
// tone curves the descriptor does not otherwise carry).
func decodeEightBitLUT(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	lut := buildEightBitLUT(d.WhiteLevel)

	offset := req.Params.DataOffset
	row := make([]byte, d.RawWidth)
	for y := 0; y < d.RawHeight; y++ {
		if _, err := req.Stream.ReadAt(row, offset); err != nil {
			return Result{}, err
		}
		for x := 0; x < d.RawWidth; x++ {
			v := lut[row[x]]
			checkSampleRange(req.Diag, offset+int64(x), v, d.BitsPerSample)
			plane.Set(x, y, 0, v)
		}
		offset += int64(d.RawWidth)
	}
	return Result{Plane: plane}, nil
}

// buildEightBitLUT scales the 8-bit domain up to white, falling back
// to a 16-to-1 ramp (matching a plain 12-bit sensor) when no white
// level is known yet.
func buildEightBitLUT(white int) [256]uint16 {
	if white <= 0 {
		white = 4095
	}
	var lut [256]uint16
	for i := 0; i < 256; i++ {
		lut[i] = uint16(i * white / 255)
	}
	return lut
}
