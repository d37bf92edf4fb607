package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodePanasonicRW2 unpacks Panasonic's 14-pixel block layout: each
// block starts with a 2-bit shift code per sample group, an 8-bit
// absolute resync value, then 4-bit refinement nibbles building up
// to 12-bit samples.
func decodePanasonicRW2(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	const blockSamples = 14
	offset := req.Params.DataOffset

	for y := 0; y < d.RawHeight; y++ {
		for x := 0; x < d.RawWidth; x += blockSamples {
			n := blockSamples
			if x+n > d.RawWidth {
				n = d.RawWidth - x
			}
			blockBytes := 2 + (n+1)/2 // resync byte + shift byte + 1 nibble/sample packed in bytes below
			raw, err := req.Stream.ReadAtN(blockBytes, offset)
			if err != nil {
				return Result{}, err
			}
			offset += int64(blockBytes)

			resync := uint32(raw[0])
			shiftCode := raw[1] & 0x3

			br := NewBitReader(raw[2:])
			prev := resync << 4
			for i := 0; i < n; i++ {
				nibble, err := br.Bits(4)
				if err != nil {
					break
				}
				refined := (prev + (nibble << shiftCode)) & 0xfff
				checkSampleRange(req.Diag, offset, uint16(refined), d.BitsPerSample)
				plane.Set(x+i, y, 0, uint16(refined))
				prev = refined
			}
		}
	}
	return Result{Plane: plane}, nil
}
