package decoder

import (
	"github.com/tacusci/rawforge/internal/rawimage"
)

// decodeUnpacked reads fixed-width 16-bit samples straight off the
// stream in whatever byte order the container established, optionally
// right-shifting by a count encoded in load_flags (bits 0-3),
// verifying the shifted sample fits bits_per_sample.
func decodeUnpacked(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)

	shift := int(req.Params.LoadFlags & 0xf)
	offset := req.Params.DataOffset
	buf := make([]byte, 2)
	for y := 0; y < d.RawHeight; y++ {
		for x := 0; x < d.RawWidth; x++ {
			if _, err := req.Stream.ReadAt(buf, offset); err != nil {
				return Result{}, err
			}
			v := req.Stream.Order().Uint16(buf)
			if shift > 0 {
				v >>= uint(shift)
			}
			checkSampleRange(req.Diag, offset, v, d.BitsPerSample)
			plane.Set(x, y, 0, v)
			offset += 2
		}
	}
	return Result{Plane: plane}, nil
}
