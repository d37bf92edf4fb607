package pipeline

import (
	"strings"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/decoder"
)

// The handful of Compression tag values the generic (non-vendor)
// fallback path below branches on.
const (
	compressionOldJPEG = 6
	compressionNewJPEG = 7
)

// variantForDescriptor selects a decoder.Variant from the finalized
// descriptor's make, CFA, and the TIFF compression tag observed during
// tag extraction, the Go replacement for the original's per-vendor
// function-pointer table lookup.
func variantForDescriptor(d *camera.Descriptor, compression int) decoder.Variant {
	makeName := strings.ToUpper(d.Make)

	switch {
	case d.CFA == camera.CFAMonochrome && makeName == "SIGMA":
		return decoder.VariantFoveon
	case d.CFA == camera.CFAXTrans:
		return decoder.VariantFujiXTrans
	}

	switch makeName {
	case "CANON":
		switch {
		case strings.Contains(d.Model, "SRAW") || strings.Contains(d.Model, "sRAW"):
			return decoder.VariantCanonSRAW
		case strings.Contains(strings.ToUpper(d.DecoderVariant), "CRX"):
			return decoder.VariantCanonCRX
		default:
			return decoder.VariantCanonLosslessJPEG
		}
	case "NIKON":
		switch {
		case strings.Contains(strings.ToUpper(d.Model), "YUV"):
			return decoder.VariantNikonYUV
		default:
			return decoder.VariantNikonCompressed
		}
	case "SONY":
		if strings.Contains(d.DecoderVariant, "ARW1") {
			return decoder.VariantSonyARW1
		}
		return decoder.VariantSonyARW2
	case "PANASONIC", "LEICA":
		return decoder.VariantPanasonicRW2
	case "SAMSUNG":
		switch {
		case strings.HasSuffix(d.Model, "1"):
			return decoder.VariantSamsungSRW1
		case strings.HasSuffix(d.Model, "3"):
			return decoder.VariantSamsungSRW3
		default:
			return decoder.VariantSamsungSRW2
		}
	case "OLYMPUS":
		return decoder.VariantOlympusORF
	case "PHASE ONE":
		return decoder.VariantPhaseOneIIQ
	case "HASSELBLAD":
		return decoder.VariantHasselblad3FR
	case "PENTAX":
		return decoder.VariantPentaxPEF
	case "KODAK":
		return decoder.VariantKodak
	case "MINOLTA":
		return decoder.VariantMinoltaRD175
	}

	// Plain DNG and any unrecognized TIFF-family make fall back to the
	// compression/bits-per-sample-driven common path: a JPEG
	// compression code means the strip is lossless-JPEG-compressed,
	// 8-bit strips carry a linear LUT, anything that isn't an even
	// byte width is bit-packed, everything else is a flat unpacked
	// array.
	switch {
	case compression == compressionOldJPEG || compression == compressionNewJPEG:
		return decoder.VariantCanonLosslessJPEG
	case d.BitsPerSample == 8:
		return decoder.VariantEightBitLUT
	case d.BitsPerSample%8 != 0:
		return decoder.VariantPacked
	default:
		return decoder.VariantUnpacked
	}
}
