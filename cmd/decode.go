package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacusci/rawforge/internal/config"
	"github.com/tacusci/rawforge/internal/diag"
	"github.com/tacusci/rawforge/internal/pipeline"
	"github.com/tacusci/rawforge/internal/writer"
)

func newDecodeCommand() *cobra.Command {
	opts := config.Default()

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a single raw file into a finished image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runDecode(args[0], opts)
		},
	}
	bindCommonFlags(cmd, &opts)
	return cmd
}

func bindCommonFlags(cmd *cobra.Command, opts *config.Options) {
	cmd.Flags().BoolVarP(&opts.UseAutoWB, "auto-wb", "a", opts.UseAutoWB, "use an averaged grey-world white balance")
	cmd.Flags().BoolVarP(&opts.UseCameraWB, "camera-wb", "w", opts.UseCameraWB, "use the camera's as-shot white balance")
	cmd.Flags().IntVarP(&opts.OutputColorSpace, "colorspace", "o", opts.OutputColorSpace, "output color space (0=sRGB 1=Adobe 2=WideGamut 3=ProPhoto 4=XYZ 5=ACES)")
	cmd.Flags().IntVarP(&opts.OutputBits, "depth", "b", opts.OutputBits, "output bit depth (8 or 16)")
	cmd.Flags().BoolVarP(&opts.OutputTIFF, "tiff", "T", opts.OutputTIFF, "write TIFF instead of PNM")
	cmd.Flags().Float64VarP(&opts.Gamma[0], "gamma-power", "g", opts.Gamma[0], "gamma curve power")
	cmd.Flags().Float64Var(&opts.Gamma[1], "gamma-toe", opts.Gamma[1], "gamma curve toe slope")
	cmd.Flags().BoolVarP(&opts.NoAutoBright, "no-auto-bright", "W", opts.NoAutoBright, "disable automatic highlight clipping")
	cmd.Flags().IntVarP(&opts.Highlight, "highlight", "H", opts.Highlight, "highlight recovery mode (0=clip 1=unclip 2=blend 3+=rebuild)")
	cmd.Flags().Float64VarP(&opts.Threshold, "denoise", "n", opts.Threshold, "wavelet denoise threshold, 0 disables")
	cmd.Flags().IntVarP(&opts.MedPasses, "median", "m", opts.MedPasses, "median filter passes after demosaic")
	cmd.Flags().IntVarP(&opts.UserQual, "quality", "q", opts.UserQual, "demosaic quality (0=bilinear 1=VNG 2=PPG 3=AHD 4=X-Trans)")
	cmd.Flags().BoolVarP(&opts.WriteToStdout, "stdout", "c", opts.WriteToStdout, "write the decoded image to stdout")
	cmd.Flags().Float64VarP(&opts.ChromaticAberration[0], "ca-red", "R", opts.ChromaticAberration[0], "red channel chromatic aberration scale, 0 disables")
	cmd.Flags().Float64VarP(&opts.ChromaticAberration[1], "ca-blue", "B", opts.ChromaticAberration[1], "blue channel chromatic aberration scale, 0 disables")
	cmd.Flags().StringVar(&opts.BadPixelFile, "bad-pixel-file", opts.BadPixelFile, "text file of col row timestamp dead-pixel entries to repair")
	cmd.Flags().StringVar(&opts.DarkFrame, "dark-frame", opts.DarkFrame, "16-bit binary PGM dark frame to subtract, matching the active area")
	cmd.Flags().BoolVar(&opts.UseFujiRotate, "fuji-rotate", opts.UseFujiRotate, "de-rotate Fuji Super CCD SR diagonal sensors")
	cmd.Flags().BoolVar(&opts.HalfSize, "half-size", opts.HalfSize, "skip demosaic interpolation, output one pixel per Bayer block")
	cmd.Flags().IntVar(&opts.GreyBox[0], "grey-box-left", opts.GreyBox[0], "left edge of the auto white balance sampling rectangle")
	cmd.Flags().IntVar(&opts.GreyBox[1], "grey-box-top", opts.GreyBox[1], "top edge of the auto white balance sampling rectangle")
	cmd.Flags().IntVar(&opts.GreyBox[2], "grey-box-width", opts.GreyBox[2], "width of the auto white balance sampling rectangle, 0 uses the whole image")
	cmd.Flags().IntVar(&opts.GreyBox[3], "grey-box-height", opts.GreyBox[3], "height of the auto white balance sampling rectangle, 0 uses the whole image")
}

func runDecode(path string, opts config.Options) error {
	popts, err := opts.ToPipelineOptions()
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	ctx, err := pipeline.Run(path, popts)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	defer ctx.Close()

	if ctx.Diag.Corrupt > 0 {
		diag.Infof("%s: %d recoverable corruption events during decode", path, ctx.Diag.Corrupt)
	}

	out, closeOut, err := openOutput(path, opts)
	if err != nil {
		return err
	}
	defer closeOut()

	if opts.OutputTIFF {
		return writer.WriteTIFF(out, ctx.Work)
	}
	maxVal := (1 << uint(opts.OutputBits)) - 1
	return writer.WritePNM(out, ctx.Work, false, maxVal)
}

func openOutput(path string, opts config.Options) (*os.File, func(), error) {
	if opts.WriteToStdout {
		return os.Stdout, func() {}, nil
	}
	ext := ".pnm"
	if opts.OutputTIFF {
		ext = ".tiff"
	}
	dest := strings.TrimSuffix(path, filepath.Ext(path)) + ext
	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", dest, err)
	}
	return f, func() { f.Close() }, nil
}
