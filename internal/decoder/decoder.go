// Package decoder implements the per-vendor sensor payload decoders:
// one function per family, selected by the descriptor's Variant,
// filling either the raw plane (mosaic sensors) or the working image
// (linear sensors) directly from the container's byte stream.
package decoder

import (
	"fmt"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/diag"
	"github.com/tacusci/rawforge/internal/rawimage"
	"github.com/tacusci/rawforge/internal/rawio"
)

// Variant names a sensor payload decoder family. It replaces the
// original's function-pointer dispatch table with an explicit sum
// type, per the Design Notes guidance.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantUnpacked
	VariantPacked
	VariantEightBitLUT
	VariantCanonLosslessJPEG
	VariantCanonSRAW
	VariantCanonRMF
	VariantCanonCRX
	VariantNikonCompressed
	VariantNikonYUV
	VariantSonyARW1
	VariantSonyARW2
	VariantPanasonicRW2
	VariantSamsungSRW1
	VariantSamsungSRW2
	VariantSamsungSRW3
	VariantOlympusORF
	VariantPhaseOneIIQ
	VariantHasselblad3FR
	VariantPentaxPEF
	VariantFujiXTrans
	VariantKodak
	VariantSMaL
	VariantFoveon
	VariantMinoltaRD175
	VariantQuickTake100
	VariantMicron2010
	VariantCINE
	VariantRedCine
)

// Params carries the per-decoder tunables the descriptor's
// identification step fills in: load_flags, tile geometry, and
// per-shot offsets, per spec §4.C's common contract.
type Params struct {
	LoadFlags    uint32
	TileWidth    int
	TileHeight   int
	DataOffset   int64
	DataLength   int64
	SecondOffset int64 // per-shot offset, e.g. Fuji second exposure
}

// Request bundles everything a decoder function needs: the stream,
// the finalized descriptor, its own params, and a sink for the
// sticky corrupt-data counter.
type Request struct {
	Stream *rawio.Stream
	Desc   *camera.Descriptor
	Params Params
	Diag   *diag.Counters
}

// Result is what a decoder produces: a raw plane for mosaic sensors,
// XOR a working image directly for already-linear/already-demosaiced
// sources (Foveon, sRAW, Nikon YUV).
type Result struct {
	Plane   *rawimage.Plane
	Working *rawimage.Working
}

// Func is the shape every decoder family implements.
type Func func(req Request) (Result, error)

// checkSampleRange increments the corrupt-data counter when a decoded
// sample does not fit bits_per_sample, per the "every decoder
// validates" closing sentence of spec §4.C.
func checkSampleRange(d *diag.Counters, offset int64, sample uint16, bitsPerSample int) {
	if bitsPerSample <= 0 || bitsPerSample >= 16 {
		return
	}
	limit := uint16(1<<uint(bitsPerSample)) - 1
	if sample > limit {
		if d != nil {
			d.MarkCorrupt(offset, fmt.Sprintf("sample %d exceeds %d-bit range", sample, bitsPerSample))
		}
	}
}
