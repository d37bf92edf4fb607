package config

import (
	"testing"

	"github.com/tacusci/rawforge/internal/demosaic"
	"github.com/tacusci/rawforge/internal/scale"
)

func TestToPipelineOptionsSelectsDemosaicByUserQual(t *testing.T) {
	o := Default()
	o.UserQual = 1
	got, err := o.ToPipelineOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DemosaicAlgorithm != demosaic.AlgorithmVNG {
		t.Fatalf("got %v, want AlgorithmVNG", got.DemosaicAlgorithm)
	}
}

func TestToPipelineOptionsPrefersUserMultipliersOverAuto(t *testing.T) {
	o := Default()
	o.UserMul = [4]float64{2, 1, 2, 1}
	got, err := o.ToPipelineOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WhiteBalance != scale.SourceUser {
		t.Fatalf("got %v, want SourceUser when UserMul is set", got.WhiteBalance)
	}
	if got.UserMultipliers != o.UserMul {
		t.Fatalf("got %v, want %v", got.UserMultipliers, o.UserMul)
	}
}

func TestToPipelineOptionsDefaultsToAutoWhiteBalance(t *testing.T) {
	o := Default()
	got, err := o.ToPipelineOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WhiteBalance != scale.SourceAuto {
		t.Fatalf("got %v, want SourceAuto", got.WhiteBalance)
	}
}

func TestToPipelineOptionsReturnsErrorForMissingBadPixelFile(t *testing.T) {
	o := Default()
	o.BadPixelFile = "/nonexistent/bad-pixels.txt"
	if _, err := o.ToPipelineOptions(); err == nil {
		t.Fatal("expected an error for a missing bad pixel file")
	}
}
