package mode

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/pipeline"
	"github.com/khaledhikmat/vs-matting/service/lgr"
	"github.com/khaledhikmat/vs-matting/service/video"
)

// Video mattes a video file, or every video in a directory, into the output.
func Video(canxCtx context.Context, svcs ServicesFactory, opts InferOptions) error {
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
		return batch(canxCtx, opts.Input, opts.Output, video.IsVideo, func(in, out string) error {
			return matteVideo(canxCtx, svcs, opts, cfg, engine, in, out)
		})
	}
	return matteVideo(canxCtx, svcs, opts, cfg, engine, opts.Input, opts.Output)
}

func matteVideo(canxCtx context.Context, svcs ServicesFactory, opts InferOptions, cfg pipeline.Config, engine pipeline.Engine, input, output string) error {
	if same(input, output) {
		return xerrors.Errorf("%w: input and output must differ", pipeline.ErrInvalidConfig)
	}

	capture, err := video.OpenCapture(input)
	if err != nil {
		return err
	}

	fps := cfg.OutputFPS
	if fps == 0 {
		fps = capture.FPS()
	}
	if fps <= 0 {
		fps = pipeline.DefaultOutputFPS
	}

	codec := opts.Codec
	if codec == "" {
		codec = svcs.CfgSvc.GetOutputCodec()
	}

	writer, err := video.CreateWriter(output, codec, fps, capture.Width(), capture.Height())
	if err != nil {
		capture.Close()
		return err
	}

	lgr.Logger.Info("matting video",
		slog.String("input", input),
		slog.String("output", output),
		slog.String("signature", or(opts.Signature, svcs.CfgSvc.GetSignature())),
		slog.Any("schedule", cfg.Schedule),
		slog.String("mode", string(cfg.Mode)),
	)

	return matte(canxCtx, svcs, cfg, engine, capture, writer, input, output, "video", opts.Progress)
}

func same(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

var (
	_ pipeline.Source = (*video.Capture)(nil)
	_ pipeline.Sink   = (*video.Writer)(nil)
)
