package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tacusci/rawforge/internal/colorspace"
	"github.com/tacusci/rawforge/internal/demosaic"
	"github.com/tacusci/rawforge/internal/highlight"
	"github.com/tacusci/rawforge/internal/pipeline"
	"github.com/tacusci/rawforge/internal/preprocess"
	"github.com/tacusci/rawforge/internal/scale"
)

// demosaicAlgorithms maps the spec's user_qual integer (0-4) onto the
// five reconstruction algorithms, in the same order dcraw-family
// tools have always numbered them.
var demosaicAlgorithms = [...]demosaic.Algorithm{
	demosaic.AlgorithmBilinear,
	demosaic.AlgorithmVNG,
	demosaic.AlgorithmPPG,
	demosaic.AlgorithmAHD,
	demosaic.AlgorithmXTrans,
}

var highlightModes = [...]highlight.Mode{
	highlight.ModeClip,
	highlight.ModeUnclip,
	highlight.ModeBlend,
	highlight.ModeRebuild,
}

var outputSpaces = [...]colorspace.OutputSpace{
	colorspace.OutputSRGB,
	colorspace.OutputAdobe1998,
	colorspace.OutputWideGamut,
	colorspace.OutputProPhoto,
	colorspace.OutputXYZ,
	colorspace.OutputACES,
}

// ToPipelineOptions derives the fields pipeline.FileContext actually
// consumes from the full command-line option record. It reads the
// bad-pixel file when one is configured, since that load can fail and
// the caller needs to see the error rather than silently decoding
// without it; the dark frame, whose PGM dimensions aren't known until
// the active area is identified, is instead loaded later by
// pipeline.FileContext.preprocess via DarkFramePath.
func (o Options) ToPipelineOptions() (pipeline.Options, error) {
	popts := pipeline.DefaultOptions()

	if i := o.UserQual; i >= 0 && i < len(demosaicAlgorithms) {
		popts.DemosaicAlgorithm = demosaicAlgorithms[i]
	}
	if i := o.Highlight; i >= 0 {
		if i >= len(highlightModes) {
			i = len(highlightModes) - 1
		}
		popts.HighlightMode = highlightModes[i]
	}
	popts.RebuildLevel = o.Highlight - 2
	if popts.RebuildLevel < 0 {
		popts.RebuildLevel = 0
	}

	switch {
	case o.UserMul != [4]float64{}:
		popts.WhiteBalance = scale.SourceUser
		popts.UserMultipliers = o.UserMul
	case o.UseCameraWB:
		popts.WhiteBalance = scale.SourceCamera
	case o.UseAutoWB:
		popts.WhiteBalance = scale.SourceAuto
	default:
		popts.WhiteBalance = scale.SourceMatrix
	}

	if i := o.OutputColorSpace; i >= 0 && i < len(outputSpaces) {
		popts.OutputSpace = outputSpaces[i]
	}
	if o.Gamma[0] != 0 {
		popts.GammaPower = o.Gamma[0]
		popts.GammaToeSlope = o.Gamma[1]
	}
	popts.MedianPasses = o.MedPasses
	popts.Denoise = o.Threshold
	popts.ClipHighlights = !o.NoAutoBright
	popts.ChromaticAberration = scale.ChromaticMultipliers{
		RowRed: o.ChromaticAberration[0], ColRed: o.ChromaticAberration[0],
		RowBlue: o.ChromaticAberration[1], ColBlue: o.ChromaticAberration[1],
	}

	popts.UseFujiRotate = o.UseFujiRotate
	popts.HalfSize = o.HalfSize
	popts.GrayBox = scale.GrayBox{Left: o.GreyBox[0], Top: o.GreyBox[1], Width: o.GreyBox[2], Height: o.GreyBox[3]}
	popts.DarkFramePath = o.DarkFrame

	if o.ShotTimeUnix != 0 {
		popts.ShotTime = time.Unix(o.ShotTimeUnix, 0)
	} else {
		popts.ShotTime = time.Now()
	}

	if o.BadPixelFile != "" {
		f, err := os.Open(o.BadPixelFile)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("config: opening bad pixel file: %w", err)
		}
		defer f.Close()
		bad, err := preprocess.ParseBadPixelFile(f)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("config: parsing bad pixel file: %w", err)
		}
		popts.BadPixels = bad
	}

	return popts, nil
}
