package codec

import (
	"bytes"
	"fmt"
	"image"

	jp2k "github.com/mrjoshuak/go-jpeg2000"
)

// JPEG2000Decoder wraps github.com/mrjoshuak/go-jpeg2000, the
// external entropy-coding library used for motion-JPEG-2000 cinema
// raw frames (RedCine) and any Canon CRX tile that turns out to carry
// a JPEG 2000 codestream rather than CRX's own wavelet variant.
type JPEG2000Decoder struct {
	Config jp2k.Config
}

func NewJPEG2000Decoder() *JPEG2000Decoder {
	return &JPEG2000Decoder{}
}

// Probe checks for either the raw J2K codestream marker or the JP2
// box signature.
func (d *JPEG2000Decoder) Probe(data []byte) bool {
	if len(data) >= 2 && data[0] == 0xff && data[1] == 0x4f {
		return true // raw J2K codestream (SOC marker)
	}
	return len(data) >= 12 &&
		bytes.Equal(data[4:8], []byte("jP  ")) // JP2 signature box prefix
}

func (d *JPEG2000Decoder) Info(data []byte) (FrameInfo, error) {
	md, err := jp2k.DecodeMetadata(bytes.NewReader(data))
	if err != nil {
		return FrameInfo{}, fmt.Errorf("codec: jpeg2000 metadata: %w", err)
	}
	bits := 0
	if len(md.BitsPerComponent) > 0 {
		bits = md.BitsPerComponent[0]
	}
	return FrameInfo{
		Width:         md.Width,
		Height:        md.Height,
		NumComponents: md.NumComponents,
		BitsPerSample: bits,
	}, nil
}

func (d *JPEG2000Decoder) Decode(data []byte) (image.Image, error) {
	img, err := jp2k.DecodeConfig(bytes.NewReader(data), &d.Config)
	if err != nil {
		return nil, fmt.Errorf("codec: jpeg2000 decode: %w", err)
	}
	return img, nil
}
