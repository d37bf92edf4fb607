package pipeline

import (
	"testing"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/decoder"
)

func TestVariantForDescriptorRoutesFoveonByMonochromeSigma(t *testing.T) {
	d := &camera.Descriptor{Make: "Sigma", CFA: camera.CFAMonochrome}
	if got := variantForDescriptor(d, 0); got != decoder.VariantFoveon {
		t.Fatalf("got %v, want VariantFoveon", got)
	}
}

func TestVariantForDescriptorRoutesXTransByCFA(t *testing.T) {
	d := &camera.Descriptor{Make: "FUJIFILM", CFA: camera.CFAXTrans}
	if got := variantForDescriptor(d, 0); got != decoder.VariantFujiXTrans {
		t.Fatalf("got %v, want VariantFujiXTrans", got)
	}
}

func TestVariantForDescriptorRoutesCanonSRAWByModelSuffix(t *testing.T) {
	d := &camera.Descriptor{Make: "Canon", Model: "EOS 5D sRAW"}
	if got := variantForDescriptor(d, 0); got != decoder.VariantCanonSRAW {
		t.Fatalf("got %v, want VariantCanonSRAW", got)
	}
}

func TestVariantForDescriptorFallsBackToUnpackedForPlainDNG(t *testing.T) {
	d := &camera.Descriptor{Make: "", BitsPerSample: 16}
	if got := variantForDescriptor(d, 0); got != decoder.VariantUnpacked {
		t.Fatalf("got %v, want VariantUnpacked", got)
	}
}

func TestVariantForDescriptorPacksOddBitDepths(t *testing.T) {
	d := &camera.Descriptor{Make: "", BitsPerSample: 12}
	if got := variantForDescriptor(d, 0); got != decoder.VariantPacked {
		t.Fatalf("got %v, want VariantPacked", got)
	}
}

func TestOrientationToFlipMaskMatchesGeometryBitLayout(t *testing.T) {
	cases := map[int]int{
		1: 0,
		3: 1 | 2,
		6: 2 | 4,
		8: 1 | 4,
	}
	for orientation, want := range cases {
		if got := orientationToFlipMask(orientation); got != want {
			t.Fatalf("orientation %d: got %d, want %d", orientation, got, want)
		}
	}
}
