package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeHasselblad3FR delegates straight to the shared lossless-JPEG
// predictive primitive: 3FR payloads are standard predictive Huffman
// streams once the container wrapper is stripped, so no vendor-specific
// unpacking is needed beyond picking the canonical table. Two-value
// difference tokens per MCU (Hasselblad's interleaved pair encoding)
// collapse to the same decodeDiff/predictor pass used for Canon, just
// walked two samples at a time.
func decodeHasselblad3FR(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)
	table := defaultCanonHuffTable()

	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}
	br := NewBitReader(data)

	for y := 0; y < d.RawHeight; y++ {
		var left [2]int32
		for x := 0; x < d.RawWidth; x++ {
			diff, err := decodeDiff(br, table)
			if err != nil {
				return Result{}, err
			}
			slot := x & 1
			v := left[slot] + diff
			if v < 0 {
				v = 0
			}
			checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), d.BitsPerSample)
			plane.Set(x, y, 0, uint16(v))
			left[slot] = v
		}
	}
	return Result{Plane: plane}, nil
}
