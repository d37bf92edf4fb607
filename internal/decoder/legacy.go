package decoder

import "github.com/tacusci/rawforge/internal/rawimage"

// decodeLegacyStub handles the cameras whose formats are acknowledged
// but not reverse-engineered here: Minolta RD175's three-strip
// non-Bayer layout, the original QuickTake 100's JPEG-like but
// non-standard entropy coding, Micron 2010's evaluation-board dump,
// and Panasonic/Leica CINE's proprietary block format. Matching the
// source project's own treatment of formats it declines to support, it
// returns a correctly-shaped all-zero plane and flags the data as
// corrupt rather than guessing at semantics no public documentation
// covers.
func decodeLegacyStub(req Request) (Result, error) {
	d := req.Desc
	plane := rawimage.NewPlane(d.RawWidth, d.RawHeight, 1)
	if req.Diag != nil {
		req.Diag.MarkCorrupt(req.Params.DataOffset, "unimplemented legacy format, returning blank plane")
	}
	return Result{Plane: plane}, nil
}
