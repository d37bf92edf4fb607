package pipeline

import (
	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/container"
	"github.com/tacusci/rawforge/internal/rawio"
)

// populateFromTIFF reads the container's tag tree and copies every
// baseline and DNG tag the descriptor and decode params need out of
// IFD0 and, for tags that live on a full-size SubIFD instead, out of
// whichever walked IFD carries them. Vendor maker-note layouts beyond
// what the container package recognizes are left to the per-variant
// decoder to read for itself once dispatched.
func (ctx *FileContext) populateFromTIFF() error {
	tree, hdr, err := container.ReadTree(ctx.Stream)
	if err != nil {
		return err
	}
	pop := ctx.Stream.PushOrder(hdr.Order)
	defer pop()

	if len(tree.IFDs) == 0 {
		return nil
	}
	ifd0 := tree.IFDs[0]

	if e, ok := ifd0.Get(container.TagMake); ok {
		ctx.Desc.Make, _ = container.ASCIIValue(ctx.Stream, e)
	}
	if e, ok := ifd0.Get(container.TagModel); ok {
		ctx.Desc.Model, _ = container.ASCIIValue(ctx.Stream, e)
	}
	if e, ok := ifd0.Get(container.TagImageWidth); ok {
		ctx.Desc.RawWidth = int(container.Uint32Value(ctx.Stream, e))
	}
	if e, ok := ifd0.Get(container.TagImageHeight); ok {
		ctx.Desc.RawHeight = int(container.Uint32Value(ctx.Stream, e))
	}
	if e, ok := ifd0.Get(container.TagBitsPerSample); ok {
		ctx.Desc.BitsPerSample = int(container.Uint32Value(ctx.Stream, e))
	}
	if e, ok := ifd0.Get(container.TagOrientation); ok {
		ctx.Desc.FlipMask = orientationToFlipMask(int(container.Uint32Value(ctx.Stream, e)))
	}
	if e, ok := ifd0.Get(container.TagCompression); ok {
		ctx.compression = int(container.Uint32Value(ctx.Stream, e))
	}

	ctx.populateCFA(ifd0)
	ctx.populateStripLayout(ifd0)

	// DNG color tags and full-size geometry may live on a SubIFD
	// rather than IFD0; scan every walked IFD for them.
	for _, ifd := range tree.IFDs {
		ctx.populateDNGColor(ifd)
		if ctx.Desc.RawWidth == 0 {
			if e, ok := ifd.Get(container.TagImageWidth); ok {
				ctx.Desc.RawWidth = int(container.Uint32Value(ctx.Stream, e))
			}
			if e, ok := ifd.Get(container.TagImageHeight); ok {
				ctx.Desc.RawHeight = int(container.Uint32Value(ctx.Stream, e))
			}
		}
		if ctx.decodeParams.DataOffset == 0 {
			ctx.populateStripLayout(ifd)
		}
	}
	return nil
}

func (ctx *FileContext) populateCFA(ifd *container.IFD) {
	e, ok := ifd.Get(container.TagCFAPattern)
	if !ok {
		e, ok = ifd.Get(container.TagCFAPattern2)
	}
	if !ok {
		return
	}
	raw, err := container.Bytes(ctx.Stream, e)
	if err != nil || len(raw) == 0 {
		return
	}
	ctx.Desc.CFA = camera.CFABayer
	var pattern uint32
	for i, v := range raw {
		if i >= 16 {
			break
		}
		pattern |= uint32(v&3) << uint(i*2)
	}
	ctx.Desc.FilterPattern = pattern
}

// offsetListValues reads a SHORT/LONG array entry whether stored
// inline or out of line, the same inline-vs-offset rule
// container.Entry.Inline already encodes.
func offsetListValues(s *rawio.Stream, e container.Entry) []uint32 {
	if e.Count == 0 {
		return nil
	}
	elemSize := e.Type.Size()
	if elemSize == 0 {
		return nil
	}
	if e.Inline() {
		out := make([]uint32, 0, e.Count)
		for i := uint32(0); i < e.Count; i++ {
			off := int(i) * elemSize
			if off+elemSize > 4 {
				break
			}
			out = append(out, readElem(s, e, off))
		}
		return out
	}
	raw, err := container.Bytes(s, e)
	if err != nil {
		return nil
	}
	out := make([]uint32, 0, e.Count)
	for i := uint32(0); i < e.Count; i++ {
		off := int(i) * elemSize
		if off+elemSize > len(raw) {
			break
		}
		out = append(out, readElemBytes(s, e.Type, raw[off:off+elemSize]))
	}
	return out
}

func readElem(s *rawio.Stream, e container.Entry, off int) uint32 {
	raw, err := container.Bytes(s, e)
	if err != nil || off+e.Type.Size() > len(raw) {
		return 0
	}
	return readElemBytes(s, e.Type, raw[off:off+e.Type.Size()])
}

func readElemBytes(s *rawio.Stream, t container.Type, b []byte) uint32 {
	switch t {
	case container.TypeShort, container.TypeSShort:
		return uint32(s.Order().Uint16(b))
	default:
		return s.Order().Uint32(b)
	}
}

func (ctx *FileContext) populateStripLayout(ifd *container.IFD) {
	if e, ok := ifd.Get(container.TagStripOffsets); ok {
		offsets := offsetListValues(ctx.Stream, e)
		if len(offsets) > 0 {
			ctx.decodeParams.DataOffset = int64(offsets[0])
		}
	}
	if e, ok := ifd.Get(container.TagStripByteCounts); ok {
		counts := offsetListValues(ctx.Stream, e)
		var total int64
		for _, c := range counts {
			total += int64(c)
		}
		ctx.decodeParams.DataLength = total
	}
	if e, ok := ifd.Get(container.TagRowsPerStrip); ok {
		ctx.decodeParams.TileHeight = int(container.Uint32Value(ctx.Stream, e))
	}
}

func (ctx *FileContext) populateDNGColor(ifd *container.IFD) {
	e1, ok1 := ifd.Get(container.TagColorMatrix1)
	if !ok1 {
		return
	}
	if ctx.dng == nil {
		ctx.dng = &camera.DNGValues{}
	}
	ctx.dng.ColorMatrix1 = readMatrix3x4(ctx.Stream, e1)
	ctx.dng.HasColorMatrix1 = true

	if e, ok := ifd.Get(container.TagCameraCalibration1); ok {
		ctx.dng.CameraCalibration1 = readMatrix3x4(ctx.Stream, e)
		ctx.dng.HasCameraCalibration1 = true
	}
	if e, ok := ifd.Get(container.TagAsShotNeutral); ok {
		raw, err := container.Bytes(ctx.Stream, e)
		if err == nil && len(raw) >= 8 {
			for c := 0; c < 4 && c*8+8 <= len(raw); c++ {
				ctx.dng.AsShotNeutral[c] = readRational(ctx.Stream, raw[c*8:c*8+8])
			}
			ctx.dng.HasAsShotNeutral = true
		}
	}
	if e, ok := ifd.Get(container.TagBlackLevel); ok {
		ctx.Desc.BlackLevel = int(container.Uint32Value(ctx.Stream, e))
	}
	if e, ok := ifd.Get(container.TagWhiteLevel); ok {
		ctx.Desc.WhiteLevel = int(container.Uint32Value(ctx.Stream, e))
	}
}

// readMatrix3x4 reads a DNG SRATIONAL 3x3 color matrix tag into the
// first three rows of the descriptor's row-major 4-row, 3-column slot
// (4th row left zero).
func readMatrix3x4(s *rawio.Stream, e container.Entry) [12]float64 {
	var m [12]float64
	raw, err := container.Bytes(s, e)
	if err != nil {
		return m
	}
	for i := 0; i < 9 && i*8+8 <= len(raw); i++ {
		row, col := i/3, i%3
		m[row*3+col] = readRational(s, raw[i*8:i*8+8])
	}
	return m
}

func readRational(s *rawio.Stream, b []byte) float64 {
	num := int32(s.Order().Uint32(b[0:4]))
	den := int32(s.Order().Uint32(b[4:8]))
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// orientationToFlipMask maps the EXIF orientation tag's eight values
// down to the four a sensor can actually report (plain rotate/mirror
// combinations never include a bare single-axis transpose-free
// mirror), matching geometry.FlipMask's bit layout.
func orientationToFlipMask(orientation int) int {
	switch orientation {
	case 3:
		return 1 | 2 // 180 degrees: X and Y mirror
	case 6:
		return 2 | 4 // 90 CW: Y mirror + swap
	case 8:
		return 1 | 4 // 90 CCW: X mirror + swap
	default:
		return 0
	}
}
