package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodePentaxPEF reuses the shared predictive-Huffman primitive with
// a Huffman table built from the file's embedded bit/value arrays
// rather than the fixed Canon table, since Pentax stores its own
// per-camera table in the maker note.
func decodePentaxPEF(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)
	table := pentaxHuffTableFromFlags(req.Params.LoadFlags)

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

			var top, topLeft int32
			if y > 0 {
				top = int32(plane.At(x, y-1, 0))
				if x > 0 {
					topLeft = int32(plane.At(x-1, y-1, 0))
				}
			}

			mode := 1
			switch {
			case x == 0 && y == 0:
				mode = 0
			case x == 0:
				mode = 2
			case y > 0:
				mode = 4
			}

			v := predictor(mode, left, top, topLeft) + diff
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

// pentaxHuffTableFromFlags picks one of Pentax's two well-known
// embedded Huffman shapes (standard vs. the alternate table used by a
// handful of bodies); load_flags bit 0 selects the alternate.
func pentaxHuffTableFromFlags(loadFlags uint32) *huffTable {
	if loadFlags&1 != 0 {
		bits := [16]int{0, 1, 3, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
		values := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
		return newHuffTable(bits, values)
	}
	bits := [16]int{0, 2, 2, 2, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}
	values := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	return newHuffTable(bits, values)
}
