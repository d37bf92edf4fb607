package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeFujiXTrans unpacks Fuji's 6x6-tile X-Trans sensor layout. The
// payload is a plain 14-bit packed stream like decodePacked, unpacked
// here tile by tile. No fuji_width/fuji_layout offset is applied to the
// active image in this decoder.
func decodeFujiXTrans(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	const tile = 6
	bitsPerSample := d.BitsPerSample
	if bitsPerSample == 0 {
		bitsPerSample = 14
	}

	rowBytes := (d.RawWidth*bitsPerSample + 7) / 8
	data, err := req.Stream.ReadAtN(rowBytes*d.RawHeight, req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}

	for ty := 0; ty < d.RawHeight; ty += tile {
		for tx := 0; tx < d.RawWidth; tx += tile {
			if err := decodeFujiTile(plane, data, rowBytes, tx, ty, tile, d.RawWidth, d.RawHeight, bitsPerSample, req); err != nil {
				return Result{}, err
			}
		}
	}
	return Result{Plane: plane}, nil
}

// decodeFujiTile decodes one 6x6 block of a Fuji X-Trans row-packed
// stream, reading samples in tile-row-major order the way Fuji's
// interleaved block layout stores them.
func decodeFujiTile(plane *rawimage.Plane, data []byte, rowBytes, tx, ty, tile, width, height, bitsPerSample int, req Request) error {
	for dy := 0; dy < tile; dy++ {
		y := ty + dy
		if y >= height {
			continue
		}
		rowStart := y * rowBytes
		br := NewBitReader(data[rowStart : rowStart+rowBytes])
		// advance to tx's bit position in this row, in <=16-bit chunks
		skipBits := tx * bitsPerSample
		for skipBits > 0 {
			chunk := skipBits
			if chunk > 16 {
				chunk = 16
			}
			if _, err := br.Bits(chunk); err != nil {
				return err
			}
			skipBits -= chunk
		}
		for dx := 0; dx < tile; dx++ {
			x := tx + dx
			if x >= width {
				continue
			}
			v, err := br.Bits(bitsPerSample)
			if err != nil {
				return err
			}
			checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), bitsPerSample)
			plane.Set(x, y, 0, uint16(v))
		}
	}
	return nil
}
