package decoder

import "fmt"

// registry maps each Variant to its implementing Func. A table here
// instead of a switch keeps adding a family a one-line change, the
// same replacement the container package made for maker-note vendor
// dispatch.
var registry = map[Variant]Func{
	VariantUnpacked:          decodeUnpacked,
	VariantPacked:            decodePacked,
	VariantEightBitLUT:       decodeEightBitLUT,
	VariantCanonLosslessJPEG: decodeCanonLosslessJPEG,
	VariantCanonSRAW:         decodeCanonSRAW,
	VariantCanonCRX:          decodeCanonCRX,
	VariantNikonCompressed:   decodeNikonCompressed,
	VariantNikonYUV:          decodeNikonYUV,
	VariantSonyARW1:          decodeSonyARW1,
	VariantSonyARW2:          decodeSonyARW2,
	VariantPanasonicRW2:      decodePanasonicRW2,
	VariantSamsungSRW1:       decodeSamsungSRW,
	VariantSamsungSRW2:       decodeSamsungSRW,
	VariantSamsungSRW3:       decodeSamsungSRW,
	VariantOlympusORF:        decodeOlympusORF,
	VariantPhaseOneIIQ:       decodePhaseOneIIQ,
	VariantHasselblad3FR:     decodeHasselblad3FR,
	VariantPentaxPEF:         decodePentaxPEF,
	VariantFujiXTrans:        decodeFujiXTrans,
	VariantKodak:             decodeKodak,
	VariantSMaL:              decodeSMaL,
	VariantFoveon:            decodeFoveon,
	VariantMinoltaRD175:      decodeLegacyStub,
	VariantQuickTake100:      decodeLegacyStub,
	VariantMicron2010:        decodeLegacyStub,
	VariantCINE:              decodeLegacyStub,
	VariantRedCine:           decodeRedCine,
}

// ErrUnknownVariant is returned when no decoder is registered for a
// requested Variant, one of the non-local-exit conditions the
// per-file driver loop must catch and treat as "skip this file".
var ErrUnknownVariant = fmt.Errorf("decoder: no function registered for this variant")

// Decode looks up and invokes the decoder for v.
func Decode(v Variant, req Request) (Result, error) {
	fn, ok := registry[v]
	if !ok {
		return Result{}, ErrUnknownVariant
	}
	return fn(req)
}
