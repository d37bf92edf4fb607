package camera

import "testing"

func TestIdentifyTableMatchOverridesDefaults(t *testing.T) {
	d := &Descriptor{Make: "NIKON CORPORATION", Model: "NIKON CORPORATION D90     "}
	Identify(d, 0, nil, Options{})

	if d.Make != "Nikon" {
		t.Fatalf("expected normalized make Nikon, got %q", d.Make)
	}
	if d.Model != "D90" {
		t.Fatalf("expected stripped model D90, got %q", d.Model)
	}
	if !d.UsedTableMatrix || !d.HasColorMatrix {
		t.Fatalf("expected table match for D90")
	}
	if d.WhiteLevel != 4095 {
		t.Fatalf("expected table maximum 4095, got %d", d.WhiteLevel)
	}
}

func TestIdentifyDNGWinsWhenNoTableMatch(t *testing.T) {
	d := &Descriptor{Make: "Acme", Model: "Acme Nonexistent Model 9000"}
	dng := &DNGValues{HasColorMatrix1: true, ColorMatrix1: [12]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0, 0}}
	Identify(d, 0, dng, Options{})

	if !d.HasColorMatrix || d.UsedTableMatrix || d.UsedSimpleFallback {
		t.Fatalf("expected DNG embedded matrix to be used, got %+v", d)
	}
	if d.ColorMatrix != dng.ColorMatrix1 {
		t.Fatalf("expected ColorMatrix to equal embedded DNG matrix")
	}
}

func TestIdentifyUseCameraMatrixForcesDNGOverTable(t *testing.T) {
	d := &Descriptor{Make: "NIKON CORPORATION", Model: "NIKON CORPORATION D90"}
	dng := &DNGValues{HasColorMatrix1: true, ColorMatrix1: [12]float64{9, 9, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0}}
	Identify(d, 0, dng, Options{UseCameraMatrix: true})

	if d.UsedTableMatrix {
		t.Fatalf("expected --use-camera-matrix to bypass the table match")
	}
	if d.ColorMatrix != dng.ColorMatrix1 {
		t.Fatalf("expected forced DNG matrix, got %+v", d.ColorMatrix)
	}
}

func TestIdentifySimpleFallbackForKodakDC20(t *testing.T) {
	d := &Descriptor{Make: "Eastman Kodak Company", Model: "Eastman Kodak Company DC20"}
	Identify(d, 0, nil, Options{})

	if !d.UsedSimpleFallback || !d.HasColorMatrix {
		t.Fatalf("expected simple fallback matrix for Kodak DC20, got %+v", d)
	}
}

func TestIdentifyFileSizeFallbackWhenNoSignature(t *testing.T) {
	d := &Descriptor{}
	Identify(d, 1581060, nil, Options{})

	if !d.FileSizeIdentified {
		t.Fatalf("expected file-size identification to trigger")
	}
	if d.Make != "Nikon" || d.Model != "E900" {
		t.Fatalf("expected Nikon E900 from file-size table, got %q %q", d.Make, d.Model)
	}
}

func TestIdentityWhenNothingMatches(t *testing.T) {
	d := &Descriptor{Make: "Unknown", Model: "Unknown Totally Novel Camera"}
	Identify(d, 0, nil, Options{})

	if d.HasColorMatrix {
		t.Fatalf("expected identity (no color matrix) when nothing matches")
	}
}
