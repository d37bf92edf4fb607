package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacusci/rawforge/internal/config"
	"github.com/tacusci/rawforge/internal/pipeline"
)

func newIdentifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <file>",
		Short: "Print camera identification and container metadata without decoding the sensor payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIdentify(args[0])
		},
	}
	return cmd
}

func runIdentify(path string) error {
	opts, err := config.Default().ToPipelineOptions()
	if err != nil {
		return fmt.Errorf("configuring %s: %w", path, err)
	}
	ctx, err := pipeline.Open(path, opts)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer ctx.Close()

	if err := ctx.Identify(); err != nil {
		return fmt.Errorf("identifying %s: %w", path, err)
	}

	d := ctx.Desc
	fmt.Printf("%s: %s %s\n", path, d.Make, d.Model)
	fmt.Printf("  raw size:    %dx%d\n", d.RawWidth, d.RawHeight)
	fmt.Printf("  active area: %dx%d at (%d,%d)\n", d.ActiveArea.Width, d.ActiveArea.Height, d.ActiveArea.Left, d.ActiveArea.Top)
	fmt.Printf("  cfa:         %v\n", d.CFA)
	fmt.Printf("  bits/sample: %d\n", d.BitsPerSample)
	fmt.Printf("  black/white: %d/%d\n", d.BlackLevel, d.WhiteLevel)
	fmt.Printf("  decoder:     %s\n", d.DecoderVariant)
	return nil
}
