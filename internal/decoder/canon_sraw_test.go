package decoder

import (
	"math"
	"testing"
)

func TestCanonGenerationForMatchesModelSubstring(t *testing.T) {
	g := canonGenerationFor("Canon EOS 5D Mark III")
	if g.hueOffsetDeg != -1.0 {
		t.Fatalf("got hue offset %v, want -1.0 for 5D Mark III", g.hueOffsetDeg)
	}
}

func TestCanonGenerationForFallsBackToIdentity(t *testing.T) {
	g := canonGenerationFor("PowerShot G7 X")
	if g != canonIdentity {
		t.Fatalf("got %+v, want the identity correction for an unrecognized model", g)
	}
}

func TestApplyCanonCorrectionIdentityPassesThroughUnchanged(t *testing.T) {
	got := applyCanonCorrection(canonIdentity, 1000, 2000, 3000)
	want := [3]float64{1000, 2000, 3000}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestApplyCanonCorrectionSubtractsAndClampsToZero(t *testing.T) {
	gen := canonGeneration{
		subtractor: [3]float64{0, 50000, 50000},
		matrix:     canonIdentity.matrix,
	}
	got := applyCanonCorrection(gen, 100, 100, 100)
	if got[1] < 0 || got[2] < 0 {
		t.Fatalf("expected subtracted channels to clamp at zero, got %v", got)
	}
}

func TestClampUint16ClampsBothBounds(t *testing.T) {
	if v := clampUint16(-5); v != 0 {
		t.Fatalf("got %d, want 0", v)
	}
	if v := clampUint16(1 << 20); v != 65535 {
		t.Fatalf("got %d, want 65535", v)
	}
}
