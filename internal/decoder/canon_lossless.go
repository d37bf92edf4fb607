package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// canonDefaultRestartInterval bounds how many samples pass between restart
// markers when load_flags doesn't specify one; Canon lossless-JPEG
// raw payloads reset the predictor at each boundary.
const canonDefaultRestartInterval = 1 << 16

// decodeCanonLosslessJPEG implements Canon's predictive-Huffman
// lossless JPEG variant (the same primitive "lossless DNG" and
// Pentax's per-file-table path build on): predictor mode 1-7 is
// selected once per component group from load_flags bits 8-10,
// restart markers (byte-aligned zero runs) reset the left predictor.
func decodeCanonLosslessJPEG(req Request) (Result, error) {
	d := req.Desc
	mode := int((req.Params.LoadFlags >> 8) & 0x7)
	if mode == 0 {
		mode = 2 // "top" is the common default when unspecified
	}

	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)
	table := defaultCanonHuffTable()

	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}
	br := NewBitReader(data)

	restartInterval := canonDefaultRestartInterval
	samplesSinceRestart := 0

	var left, top, topLeft int32
	for y := 0; y < d.RawHeight; y++ {
		for x := 0; x < d.RawWidth; x++ {
			if samplesSinceRestart > 0 && samplesSinceRestart%restartInterval == 0 {
				br.Align()
				left, top, topLeft = 0, 0, 0
			}

			diff, err := decodeDiff(br, table)
			if err != nil {
				return Result{}, err
			}

			m := mode
			if x == 0 && y == 0 {
				m = 0
			} else if y == 0 {
				m = 1 // first row: only a left neighbor exists
			} else if x == 0 {
				m = 2 // first column: only a top neighbor exists
			}

			pred := predictor(m, left, top, topLeft)
			v := pred + diff
			checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), d.BitsPerSample)
			plane.Set(x, y, 0, uint16(v))

			topLeft = top
			left = v
			if x+1 < d.RawWidth {
				top = int32(plane.At(x+1, max0(y-1), 0))
			}
			samplesSinceRestart++
		}
		left = 0
	}
	return Result{Plane: plane}, nil
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
