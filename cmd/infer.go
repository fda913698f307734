package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khaledhikmat/vs-matting/mode"
)

var (
	inferOpts mode.InferOptions
	inferMode string
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Matte a video or an image with an exported graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, ok := mode.Processors[inferMode]
		if !ok {
			return fmt.Errorf("invalid mode %q (choose from video, img)", inferMode)
		}
		cmd.SilenceUsage = true
		return proc(cmd.Context(), svcs, inferOpts)
	},
}

func init() {
	inferCmd.Flags().StringVarP(&inferMode, "mode", "m", "video", "Input kind: video, img")
	inferCmd.Flags().StringVarP(&inferOpts.Weight, "weight", "w", "", "Path to the exported graph (.onnx, or OpenVINO .xml)")
	inferCmd.Flags().StringVarP(&inferOpts.Input, "input", "i", "", "Input file or directory")
	inferCmd.Flags().StringVarP(&inferOpts.Output, "output", "o", "", "Output file or directory")
	inferCmd.Flags().StringVar(&inferOpts.Signature, "signature", "", "Tensor names: static, rvm (default from config)")
	inferCmd.Flags().StringVar(&inferOpts.Variant, "variant", "", "Backbone the graph was built from (default from config)")
	inferCmd.Flags().IntVar(&inferOpts.Width, "width", 0, "Network input width (default from config)")
	inferCmd.Flags().IntVar(&inferOpts.Height, "height", 0, "Network input height (default from config)")
	inferCmd.Flags().Float64Var(&inferOpts.DownsampleRatio, "downsample-ratio", 0, "Downsample ratio (default from config)")
	inferCmd.Flags().StringVar(&inferOpts.Background, "background", "", "Background color as r,g,b (default from config)")
	inferCmd.Flags().Float64Var(&inferOpts.FPS, "fps", -1, "Output fps, 0 keeps the source rate (default from config)")
	inferCmd.Flags().StringVar(&inferOpts.OutputMode, "output-mode", "", "Output: composite, alpha, merge (default from config)")
	inferCmd.Flags().StringVar(&inferOpts.Codec, "codec", "", "Output fourcc (default from config)")
	inferCmd.Flags().BoolVar(&inferOpts.Progress, "progress", true, "Show a progress bar")
	inferCmd.Flags().BoolVar(&inferOpts.Fake, "fake-engine", false, "Echo frames instead of running a graph")

	inferCmd.MarkFlagRequired("input")
	inferCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(inferCmd)
}
