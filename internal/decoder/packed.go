package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// packed load_flags layout: bits 0-5 bit width, bit 6 Nikon stripe
// interleave, bit 7 pads each row to a 16-byte boundary (rows are
// unpadded when it is clear; 15-byte padding is not supported).
const (
	packedWidthMask     = 0x3f
	packedInterleaveBit = 1 << 6
	packedPad16Bit      = 1 << 7
)

// decodePacked unpacks variable-width (10/12/14-bit) samples packed
// across bytes, honoring Nikon's row-interleave and row-padding
// conventions when load_flags requests them. Plain 12-bit rows (no
// interleave) use the little-endian, two-samples-per-three-bytes
// convention Panasonic/Leica pack their raw data in; every other
// width falls back to MSB-first bit packing, the convention most
// other packed raw formats use.
func decodePacked(req Request) (Result, error) {
	d := req.Desc
	width := int(req.Params.LoadFlags & packedWidthMask)
	if width == 0 {
		width = d.BitsPerSample
	}
	interleaved := req.Params.LoadFlags&packedInterleaveBit != 0
	pad16 := req.Params.LoadFlags&packedPad16Bit != 0
	littleEndian12 := width == 12 && !interleaved

	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	rowBits := d.RawWidth * width
	rowBytes := (rowBits + 7) / 8
	if pad16 {
		rowBytes = ((rowBytes + 15) / 16) * 16
	}

	rowData := make([]byte, rowBytes)
	rowOrder := make([]int, d.RawHeight)
	for i := range rowOrder {
		rowOrder[i] = i
	}
	if interleaved {
		rowOrder = nikonInterleaveOrder(d.RawHeight)
	}

	offset := req.Params.DataOffset
	for _, y := range rowOrder {
		if _, err := req.Stream.ReadAt(rowData, offset); err != nil {
			return Result{}, err
		}
		if littleEndian12 {
			samples := unpackLE12(rowData, d.RawWidth)
			for x, v := range samples {
				checkSampleRange(req.Diag, offset, v, d.BitsPerSample)
				plane.Set(x, y, 0, v)
			}
		} else {
			br := NewBitReader(rowData)
			for x := 0; x < d.RawWidth; x++ {
				v, err := br.Bits(width)
				if err != nil {
					return Result{}, err
				}
				checkSampleRange(req.Diag, offset, uint16(v), d.BitsPerSample)
				plane.Set(x, y, 0, uint16(v))
			}
		}
		offset += int64(rowBytes)
	}
	return Result{Plane: plane}, nil
}

// unpackLE12 unpacks count 12-bit samples from a little-endian packed
// row: sample 2i contributes its low byte to row[3i] and its high
// nibble to the low nibble of row[3i+1]; sample 2i+1 contributes its
// low nibble to the high nibble of row[3i+1] and its high byte to
// row[3i+2].
func unpackLE12(row []byte, count int) []uint16 {
	out := make([]uint16, count)
	for i := 0; i+1 < count; i += 2 {
		b := row[i/2*3:]
		combined := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		out[i] = uint16(combined & 0xfff)
		out[i+1] = uint16((combined >> 12) & 0xfff)
	}
	if count%2 == 1 {
		b := row[(count-1)/2*3:]
		combined := uint32(b[0]) | uint32(b[1])<<8
		out[count-1] = uint16(combined & 0xfff)
	}
	return out
}

// nikonInterleaveOrder produces the row-visitation order for Nikon's
// interlaced-field packed layout: even field rows first, then odd.
func nikonInterleaveOrder(height int) []int {
	order := make([]int, 0, height)
	for y := 0; y < height; y += 2 {
		order = append(order, y)
	}
	for y := 1; y < height; y += 2 {
		order = append(order, y)
	}
	return order
}
