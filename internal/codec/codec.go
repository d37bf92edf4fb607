// Package codec defines the narrow interface through which the
// pipeline hands off whole-frame entropy coding to an external
// decoder, instead of re-implementing a general-purpose image codec.
// This is the seam spec §1 and §7 call for: the sensor-payload
// decoders in internal/decoder own every raw-specific predictor and
// bit layout, but a handful of vendor payloads are themselves
// standard JPEG or JPEG 2000 streams wrapped in the raw container
// (Canon sRAW, Canon CR3/CRX, motion-JPEG-2000 cinema raws), and for
// those the pipeline defers to a real codec rather than hand-rolling
// one.
package codec

import "image"

// FrameInfo is what a caller needs to know about an embedded
// compressed frame before allocating the working image: its pixel
// dimensions and component count, independent of which underlying
// codec produced it.
type FrameInfo struct {
	Width, Height int
	NumComponents int
	BitsPerSample int
}

// Decoder is implemented by each wrapped external codec. A Decoder
// sees only a byte slice (the compressed frame, already sliced out of
// the container by internal/container or internal/decoder) and
// returns a decoded image plus the frame metadata the caller needs to
// fold the result back into the working image.
type Decoder interface {
	// Probe reports whether data looks like a stream this codec can
	// handle, without fully decoding it.
	Probe(data []byte) bool

	// Decode fully decodes data into an image.Image.
	Decode(data []byte) (image.Image, error)

	// Info extracts frame metadata without a full decode where the
	// underlying library supports it cheaply; implementations that
	// cannot do this economically fall back to a full Decode.
	Info(data []byte) (FrameInfo, error)
}

//go:generate go run go.uber.org/mock/mockgen -source=codec.go -destination=mocks/codec_mock.go -package=mocks
