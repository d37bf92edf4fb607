package codec

import (
	"fmt"
	"image"

	extjpeg "github.com/jrm-1535/jpeg"
)

// JPEGDecoder wraps github.com/jrm-1535/jpeg for both structural
// validation (Analyze, via Info/Probe) and the actual pixel decode
// (Parse + Desc.MakeFrameRawPicture) of the Canon sRAW / lossy-JPEG-
// in-DNG baseline stream. Decode assumes no chroma subsampling
// (4:4:4): sRAW's embedded JPEG carries linear sensor planes rather
// than a photographic YCbCr preview, so every component shares the
// frame's full resolution.
type JPEGDecoder struct {
	Control extjpeg.Control
}

// NewJPEGDecoder builds a decoder with a quiet, non-recursing control
// block; callers that want warnings or embedded-thumbnail recursion
// can set Control on the returned value before use.
func NewJPEGDecoder() *JPEGDecoder {
	return &JPEGDecoder{}
}

func (d *JPEGDecoder) Probe(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8
}

func (d *JPEGDecoder) Info(data []byte) (FrameInfo, error) {
	desc, err := extjpeg.Analyze(data, &d.Control)
	if desc == nil {
		return FrameInfo{}, fmt.Errorf("codec: jpeg analyze: %w", err)
	}
	md := desc.GetMetadata()
	return FrameInfo{
		Width:         int(md.Width),
		Height:        int(md.Height),
		BitsPerSample: int(md.SampleSize),
	}, nil
}

func (d *JPEGDecoder) Decode(data []byte) (image.Image, error) {
	desc, err := extjpeg.Parse(data, &d.Control)
	if err != nil {
		return nil, fmt.Errorf("codec: jpeg parse: %w", err)
	}
	if !desc.IsComplete() {
		return nil, fmt.Errorf("codec: incomplete jpeg stream")
	}

	info, err := desc.GetFrameInfo(0)
	if err != nil {
		return nil, fmt.Errorf("codec: jpeg frame info: %w", err)
	}
	samples, err := desc.MakeFrameRawPicture(0)
	if err != nil {
		return nil, fmt.Errorf("codec: jpeg raw picture: %w", err)
	}
	if len(samples) != 3 {
		return nil, fmt.Errorf("codec: expected 3 jpeg components, got %d", len(samples))
	}

	width, height := int(info.Width), int(info.Height)
	stride := ((width + 7) / 8) * 8

	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio444)
	for y := 0; y < height; y++ {
		src := y * stride
		copy(img.Y[y*img.YStride:y*img.YStride+width], (*samples[0])[src:src+width])
		copy(img.Cb[y*img.CStride:y*img.CStride+width], (*samples[1])[src:src+width])
		copy(img.Cr[y*img.CStride:y*img.CStride+width], (*samples[2])[src:src+width])
	}
	return img, nil
}
