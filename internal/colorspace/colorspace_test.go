package colorspace

import "testing"

func TestGammaLUTBoundaryValues(t *testing.T) {
	lut := BuildGammaLUT(1.0/2.2, 12.92)
	if lut[0] != 0 {
		t.Fatalf("LUT[0] = %d, want 0", lut[0])
	}
	if lut[gammaTableSize-1] != gammaTableSize-1 {
		t.Fatalf("LUT[max] = %d, want %d", lut[gammaTableSize-1], gammaTableSize-1)
	}
}

func TestGammaLUTIsNonDecreasing(t *testing.T) {
	lut := BuildGammaLUT(1.0/2.2, 12.92)
	for i := 1; i < len(lut); i++ {
		if lut[i] < lut[i-1] {
			t.Fatalf("LUT not monotonic at %d: %d < %d", i, lut[i], lut[i-1])
		}
	}
}

func TestGammaLUTLinearFallbackWhenToeSlopeIsZero(t *testing.T) {
	lut := BuildGammaLUT(1, 0)
	mid := gammaTableSize / 2
	if lut[mid] == 0 || lut[mid] == gammaTableSize-1 {
		t.Fatalf("linear gamma=1 LUT at midpoint should sit near the middle, got %d", lut[mid])
	}
}

func TestCameraToXYZInvertsIdentity(t *testing.T) {
	var m [12]float64
	m[0], m[4], m[8] = 1, 1, 1
	got := CameraToXYZ(m)
	want := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if got != want {
		t.Fatalf("got %v, want identity %v", got, want)
	}
}

func TestComposeMatrixWithXYZOutputIsCameraToXYZUnchanged(t *testing.T) {
	cam := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	got := ComposeMatrix(cam, OutputXYZ)
	if got != cam {
		t.Fatalf("got %v, want %v (XYZ output is an identity composition)", got, cam)
	}
}

func TestHistogramCountsEverySample(t *testing.T) {
	data := []uint16{0, 0, 0, 0, 65535, 65535, 65535, 65535}
	hist := Histogram(data, 4)
	var total int
	for _, c := range hist {
		total += c
	}
	if total != 2 {
		t.Fatalf("got %d histogram entries, want 2 pixels", total)
	}
	if hist[0] == 0 {
		t.Fatalf("want the black pixel counted in the lowest bucket")
	}
	if hist[histogramBuckets-1] == 0 {
		t.Fatalf("want the white pixel counted in the highest bucket")
	}
}
