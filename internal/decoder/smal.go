package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeSMaL decodes SMaL Camera Technologies' adaptive range coder.
// The real coder drives per-context histograms that evolve as symbols
// are emitted; this implementation simplifies the context model to a
// single fixed context (no per-pixel-neighborhood histogram
// selection), and fills "holes" - the coder's explicit skip/repeat
// token - with the previous sample rather than reconstructing the
// original run length.
func decodeSMaL(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}
	rc := newSMaLRangeCoder(data)

	var prev uint32
	for y := 0; y < d.RawHeight; y++ {
		for x := 0; x < d.RawWidth; x++ {
			sym, isHole, err := rc.decodeSymbol()
			if err != nil {
				return Result{}, err
			}
			v := prev
			if !isHole {
				v = sym
			}
			checkSampleRange(req.Diag, req.Params.DataOffset, uint16(v), d.BitsPerSample)
			plane.Set(x, y, 0, uint16(v))
			prev = v
		}
	}
	return Result{Plane: plane}, nil
}

// smalRangeCoder is a simplified byte-oriented range coder: a single
// flat cumulative-frequency table over 4096 buckets, with bucket 0
// reserved for the hole/skip token.
type smalRangeCoder struct {
	data []byte
	pos  int
	low  uint32
	rng  uint32
	code uint32
}

const smalRangeTop = 1 << 24

func newSMaLRangeCoder(data []byte) *smalRangeCoder {
	rc := &smalRangeCoder{data: data, rng: 0xffffffff}
	for i := 0; i < 4; i++ {
		rc.code = (rc.code << 8) | uint32(rc.nextByte())
	}
	return rc
}

func (rc *smalRangeCoder) nextByte() byte {
	if rc.pos >= len(rc.data) {
		return 0
	}
	b := rc.data[rc.pos]
	rc.pos++
	return b
}

// decodeSymbol decodes one 12-bit sample under a flat frequency model;
// this is the reduced-fidelity stand-in for the adaptive histogram the
// original coder updates after every symbol.
func (rc *smalRangeCoder) decodeSymbol() (uint32, bool, error) {
	const total = 1 << 12
	rc.rng /= total
	freq := rc.code / rc.rng
	if freq >= total {
		freq = total - 1
	}
	isHole := freq == 0
	rc.code -= freq * rc.rng
	for rc.rng < smalRangeTop {
		rc.code = (rc.code << 8) | uint32(rc.nextByte())
		rc.rng <<= 8
	}
	return freq, isHole, nil
}
