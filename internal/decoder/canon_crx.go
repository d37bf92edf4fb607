package decoder

import (
	"fmt"

	"github.com/tacusci/rawforge/internal/codec"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// decodeCanonCRX decodes a CR3/CRX ISO-BMFF tile blob. CRX's own
// wavelet variant is proprietary and undocumented in the pack; where
// a tile instead carries a standard JPEG 2000 codestream (as some
// CRX-wrapped preview/thumbnail tiles do) the external codec handles
// it directly.
func decodeCanonCRX(req Request) (Result, error) {
	d := req.Desc
	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}

	dec := codec.NewJPEG2000Decoder()
	if !dec.Probe(data) {
		if req.Diag != nil {
			req.Diag.MarkCorrupt(req.Params.DataOffset, "CRX tile is not a recognized JPEG 2000 codestream; proprietary wavelet path not implemented")
		}
		return Result{Plane: rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)}, nil
	}
	img, err := dec.Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("decoder: canon crx: %w", err)
	}

	bounds := img.Bounds()
	plane := rawimage.NewPlane(bounds.Dx(), bounds.Dy(), 1)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			plane.Set(x, y, 0, uint16(r))
		}
	}
	return Result{Plane: plane}, nil
}
