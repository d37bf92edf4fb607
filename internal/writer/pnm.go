// Package writer serializes a finished working image to the output
// formats spec §6 names: plain PNM (P5 monochrome, P6 color) and
// baseline TIFF. The TIFF output carries no EXIF sub-IFD.
package writer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tacusci/rawforge/internal/rawimage"
)

// WritePNM writes w as a binary PNM: P5 when the image is
// monochrome (channels 1 and 2 both zero everywhere isn't checked,
// the descriptor's CFA already told the caller), P6 otherwise.
// maxVal is the PNM maxval field (255 or 65535).
func WritePNM(dst io.Writer, w *rawimage.Working, monochrome bool, maxVal int) error {
	bw := bufio.NewWriter(dst)
	magic := "P6"
	if monochrome {
		magic = "P5"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, w.Width, w.Height, maxVal); err != nil {
		return err
	}

	eightBit := maxVal <= 255
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			px := w.Pixel(x, y)
			samples := [3]uint16{px[0], px[1], px[2]}
			if monochrome {
				samples = [3]uint16{px[0], px[0], px[0]}
			}
			n := 3
			if monochrome {
				n = 1
			}
			for c := 0; c < n; c++ {
				if eightBit {
					if err := bw.WriteByte(byte(samples[c] >> 8)); err != nil {
						return err
					}
					continue
				}
				if err := bw.WriteByte(byte(samples[c] >> 8)); err != nil {
					return err
				}
				if err := bw.WriteByte(byte(samples[c])); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

// WritePAM writes w as a binary PAM (P7), the self-describing format
// that carries its own WIDTH/HEIGHT/DEPTH/MAXVAL/TUPLTYPE header
// instead of PNM's positional one.
func WritePAM(dst io.Writer, w *rawimage.Working, maxVal int) error {
	bw := bufio.NewWriter(dst)
	if _, err := fmt.Fprintf(bw, "P7\nWIDTH %d\nHEIGHT %d\nDEPTH 3\nMAXVAL %d\nTUPLTYPE RGB\nENDHDR\n",
		w.Width, w.Height, maxVal); err != nil {
		return err
	}
	eightBit := maxVal <= 255
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			px := w.Pixel(x, y)
			for c := 0; c < 3; c++ {
				if eightBit {
					if err := bw.WriteByte(byte(px[c] >> 8)); err != nil {
						return err
					}
					continue
				}
				if err := bw.WriteByte(byte(px[c] >> 8)); err != nil {
					return err
				}
				if err := bw.WriteByte(byte(px[c])); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}
