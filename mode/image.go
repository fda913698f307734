package mode

import (
	"context"
	"log/slog"

	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/pipeline"
	"github.com/khaledhikmat/vs-matting/service/lgr"
	"github.com/khaledhikmat/vs-matting/service/video"
)

// Image mattes a still image, or every image in a directory. Each image is
// a one-frame run from the zero state.
func Image(canxCtx context.Context, svcs ServicesFactory, opts InferOptions) error {
	cfg, sig, err := BuildConfig(svcs.CfgSvc, opts)
	if err != nil {
		return err
	}
	if opts.Input == "" || opts.Output == "" {
		return xerrors.Errorf("%w: input and output are required", pipeline.ErrInvalidConfig)
	}

	engine, err := newEngine(svcs, opts, cfg, sig)
	if err != nil {
		return err
	}
	defer engine.Close()

	if isDir(opts.Input) {
		return batch(canxCtx, opts.Input, opts.Output, video.IsImage, func(in, out string) error {
			return matteImage(canxCtx, svcs, cfg, engine, in, out)
		})
	}
	return matteImage(canxCtx, svcs, cfg, engine, opts.Input, opts.Output)
}

func matteImage(canxCtx context.Context, svcs ServicesFactory, cfg pipeline.Config, engine pipeline.Engine, input, output string) error {
	if same(input, output) {
		return xerrors.Errorf("%w: input and output must differ", pipeline.ErrInvalidConfig)
	}

	img, err := video.ReadImage(input)
	if err != nil {
		return err
	}

	size := img.Bounds().Size()
	lgr.Logger.Info("matting image",
		slog.String("input", input),
		slog.String("output", output),
		slog.Int("width", size.X),
		slog.Int("height", size.Y),
	)

	return matte(canxCtx, svcs, cfg, engine, pipeline.NewStillSource(img), video.NewStillWriter(output, size.X, size.Y), input, output, "img", false)
}
