package preprocess

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tacusci/rawforge/internal/rawimage"
)

// ReadDarkFramePGM parses a binary (P5) 16-bit portable gray map and
// validates it matches the active width/height with maxval 65535, the
// format dark frames are required to carry.
func ReadDarkFramePGM(r io.Reader, width, height int) ([]uint16, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P5" {
		return nil, fmt.Errorf("preprocess: dark frame is not a binary PGM (P5)")
	}
	w, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	h, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	maxval, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	if w != width || h != height {
		return nil, fmt.Errorf("preprocess: dark frame is %dx%d, want %dx%d", w, h, width, height)
	}
	if maxval != 65535 {
		return nil, fmt.Errorf("preprocess: dark frame maxval is %d, want 65535", maxval)
	}

	samples := make([]uint16, w*h)
	buf := make([]byte, 2)
	for i := range samples {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("preprocess: short dark frame read: %w", err)
		}
		samples[i] = uint16(buf[0])<<8 | uint16(buf[1]) // PGM is always big-endian
	}
	return samples, nil
}

func readToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ' ' || b == '\n' || b == '\t' || b == '\r' {
			if len(tok) == 0 {
				continue
			}
			return string(tok), nil
		}
		tok = append(tok, b)
	}
}

func readIntToken(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	var v int
	_, err = fmt.Sscanf(tok, "%d", &v)
	return v, err
}

// SubtractDarkFrame subtracts dark, clamped to zero, from every
// channel-0 sample of plane.
func SubtractDarkFrame(plane *rawimage.Plane, dark []uint16) {
	for y := 0; y < plane.Height; y++ {
		for x := 0; x < plane.Width; x++ {
			v := int32(plane.At(x, y, 0)) - int32(dark[y*plane.Width+x])
			if v < 0 {
				v = 0
			}
			plane.Set(x, y, 0, uint16(v))
		}
	}
}
