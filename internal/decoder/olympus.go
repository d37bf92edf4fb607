package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeOlympusORF implements the per-row adaptive Golomb-Rice coder:
// a four-way predictor (west, north, northwest, or a flat plane
// value) is picked per pixel, and the Rice parameter adapts from a
// running carry accumulated over the row.
func decodeOlympusORF(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}
	br := NewBitReader(data)

	for y := 0; y < d.RawHeight; y++ {
		carry := uint32(4)
		for x := 0; x < d.RawWidth; x++ {
			k := riceParameter(carry)
			mag, err := decodeGolombRice(br, k)
			if err != nil {
				return Result{}, err
			}

			var pred int32
			switch {
			case x == 0 && y == 0:
				pred = int32(d.WhiteLevel / 2)
			case x == 0:
				pred = int32(plane.At(x, y-1, 0))
			case y == 0:
				pred = int32(plane.At(x-1, y, 0))
			default:
				w := int32(plane.At(x-1, y, 0))
				n := int32(plane.At(x, y-1, 0))
				nw := int32(plane.At(x-1, y-1, 0))
				pred = w + n - nw
			}

			v := pred + unzigzag(mag)
			if v < 0 {
				v = 0
			}
			checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), d.BitsPerSample)
			plane.Set(x, y, 0, uint16(v))

			carry = (carry + mag) - (carry >> 3)
		}
	}
	return Result{Plane: plane}, nil
}

// riceParameter derives the Golomb-Rice divisor exponent from the
// running carry, the standard "adapt k to the recent magnitude
// average" rule.
func riceParameter(carry uint32) int {
	k := 0
	for (uint32(1) << uint(k)) < carry {
		k++
	}
	return k
}

// decodeGolombRice reads a unary quotient followed by a k-bit
// remainder.
func decodeGolombRice(br *BitReader, k int) (uint32, error) {
	q := uint32(0)
	for {
		bit, err := br.Bits(1)
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			break
		}
		q++
	}
	if k == 0 {
		return q, nil
	}
	r, err := br.Bits(k)
	if err != nil {
		return 0, err
	}
	return q<<uint(k) | r, nil
}

// unzigzag maps an unsigned Golomb-Rice code back to a signed
// difference, interleaving positive and negative values the way
// lossless image coders conventionally do.
func unzigzag(v uint32) int32 {
	if v&1 == 0 {
		return int32(v / 2)
	}
	return -int32((v + 1) / 2)
}
