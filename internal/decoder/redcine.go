package decoder

import (
	"fmt"

	"github.com/tacusci/rawforge/internal/codec"
	"github.com/tacusci/rawforge/internal/rawimage"
)

// decodeRedCine decodes motion-JPEG-2000 cinema raw frames (RED's
// .r3d container) by delegating the codestream directly to the
// external JPEG 2000 decoder, mirroring decodeCanonCRX's structure:
// the container framing is the only vendor-specific part, the frame
// payload itself is a standard codestream.
func decodeRedCine(req Request) (Result, error) {
	d := req.Desc
	data, err := req.Stream.ReadAtN(int(req.Params.DataLength), req.Params.DataOffset)
	if err != nil {
		return Result{}, err
	}

	dec := codec.NewJPEG2000Decoder()
	if !dec.Probe(data) {
		if req.Diag != nil {
			req.Diag.MarkCorrupt(req.Params.DataOffset, "RedCine frame is not a recognized JPEG 2000 codestream")
		}
		return Result{Plane: rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)}, nil
	}
	img, err := dec.Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("decoder: redcine: %w", err)
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
