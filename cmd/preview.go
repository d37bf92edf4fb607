package cmd

import (
	"fmt"
	"image"

	"github.com/aybabtme/rgbterm"
	"github.com/nfnt/resize"
	"github.com/qeesung/image2ascii/convert"
	"github.com/spf13/cobra"

	"github.com/tacusci/rawforge/internal/config"
	"github.com/tacusci/rawforge/internal/pipeline"
)

func newPreviewCommand() *cobra.Command {
	var width, height int
	var colored bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render a decoded raw file as ANSI art in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(args[0], width, height, colored)
		},
	}
	cmd.Flags().IntVar(&width, "width", 100, "preview width in terminal columns")
	cmd.Flags().IntVar(&height, "height", 50, "preview height in terminal rows")
	cmd.Flags().BoolVar(&colored, "color", true, "render with truecolor ANSI escapes")
	return cmd
}

// runPreview runs the full decode pipeline, since the supplemented
// preview path renders the finished image rather than an embedded
// JPEG thumbnail (no sensor family reader in this tree extracts that
// thumbnail stream yet; see DESIGN.md).
func runPreview(path string, width, height int, colored bool) error {
	popts, err := config.Default().ToPipelineOptions()
	if err != nil {
		return fmt.Errorf("configuring %s: %w", path, err)
	}
	ctx, err := pipeline.Run(path, popts)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	defer ctx.Close()

	img := workingToImage(ctx.Work.Width, ctx.Work.Height, ctx.Work.Data)
	thumb := resize.Thumbnail(uint(width), uint(height), img, resize.Lanczos3)

	converter := convert.NewImageConverter()
	converted := converter.Image2ASCIIString(thumb, &convert.Options{
		FixedWidth:  int(thumb.Bounds().Dx()),
		FixedHeight: int(thumb.Bounds().Dy()),
		Colored:     colored,
	})
	fmt.Print(converted)

	caption := fmt.Sprintf("%s  %s %s  %dx%d", path, ctx.Desc.Make, ctx.Desc.Model, ctx.Desc.RawWidth, ctx.Desc.RawHeight)
	if colored {
		caption = rgbterm.FgString(caption, 140, 200, 255)
	}
	fmt.Println(caption)
	return nil
}

func workingToImage(width, height int, data []uint16) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			o := img.PixOffset(x, y)
			img.Pix[o] = byte(data[i] >> 8)
			img.Pix[o+1] = byte(data[i+1] >> 8)
			img.Pix[o+2] = byte(data[i+2] >> 8)
			img.Pix[o+3] = 0xff
		}
	}
	return img
}
