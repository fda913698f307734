package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khaledhikmat/vs-matting/mode"
	"github.com/khaledhikmat/vs-matting/pipeline"
	"github.com/khaledhikmat/vs-matting/service/exporter"
)

var (
	exportOpts   pipeline.ExportOptions
	exportDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a matting network to a graph with fixed input shapes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if exportDryRun {
			svcs.ExporterSvc = exporter.NewFake()
			exportOpts.DryRun = true
		}
		return mode.Export(cmd.Context(), svcs, exportOpts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOpts.Variant, "model-variant", "", "Backbone: mobilenetv3, resnet50")
	exportCmd.Flags().StringVar(&exportOpts.Refiner, "model-refiner", "", "Refiner: deep_guided_filter, fast_guided_filter (default from config)")
	exportCmd.Flags().StringVar(&exportOpts.Checkpoint, "checkpoint", "", "Path to trained weights")
	exportCmd.Flags().StringVarP(&exportOpts.Output, "output", "o", "", "Path of the exported graph")
	exportCmd.Flags().StringVar(&exportOpts.Signature, "signature", "", "Tensor names: static, rvm (default from config)")
	exportCmd.Flags().IntVar(&exportOpts.Width, "width", 0, "Input frame width (default from config)")
	exportCmd.Flags().IntVar(&exportOpts.Height, "height", 0, "Input frame height (default from config)")
	exportCmd.Flags().Float64Var(&exportOpts.DownsampleRatio, "downsample-ratio", 0, "Downsample ratio the state shapes derive from (default from config)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Validate and record the request without running the toolchain")

	exportCmd.MarkFlagRequired("model-variant")
	exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}
