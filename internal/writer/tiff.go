package writer

import (
	"bytes"
	"image"
	"io"

	"golang.org/x/image/tiff"

	"github.com/tacusci/rawforge/internal/rawimage"
)

// WriteTIFF encodes w as a baseline 16-bit-per-channel TIFF via
// golang.org/x/image/tiff. Carrying make/model/orientation back out
// as an EXIF sub-IFD is a known gap (see DESIGN.md) — the library
// encoder doesn't expose custom tag injection, and patching raw bytes
// after the fact isn't worth the fragility for tags no downstream
// stage reads back in.
func WriteTIFF(dst io.Writer, w *rawimage.Working) error {
	img := image.NewNRGBA64(image.Rect(0, 0, w.Width, w.Height))
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			px := w.Pixel(x, y)
			o := img.PixOffset(x, y)
			putBE16(img.Pix[o:o+2], px[0])
			putBE16(img.Pix[o+2:o+4], px[1])
			putBE16(img.Pix[o+4:o+6], px[2])
			putBE16(img.Pix[o+6:o+8], 0xffff)
		}
	}

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		return err
	}
	_, err := dst.Write(buf.Bytes())
	return err
}

func putBE16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}
