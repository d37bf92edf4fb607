package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeSamsungSRW handles all three Samsung SRW generations through
// one differential-Huffman pass. SRW1's per-row swap and SRW3's
// block-adaptive predictor selection are not reproduced: every row
// uses a left predictor, which is a reduced-fidelity stand-in flagged
// in the design notes.
func decodeSamsungSRW(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)
	table := defaultCanonHuffTable()

	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}
	br := NewBitReader(data)

	for y := 0; y < d.RawHeight; y++ {
		var left int32
		for x := 0; x < d.RawWidth; x++ {
			diff, err := decodeDiff(br, table)
			if err != nil {
				return Result{}, err
			}
			v := left + diff
			if v < 0 {
				v = 0
			}
			checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), d.BitsPerSample)
			plane.Set(x, y, 0, uint16(v))
			left = v
		}
	}
	return Result{Plane: plane}, nil
}
