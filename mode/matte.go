package mode

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/pipeline"
	"github.com/khaledhikmat/vs-matting/service/inference"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

// newEngine loads the graph named by opts.Weight. When the graph carries a
// descriptor, its shapes must agree with the schedule before anything loads.
func newEngine(svcs ServicesFactory, opts InferOptions, cfg pipeline.Config, sig model.Signature) (inference.IService, error) {
	if opts.Fake {
		return inference.NewFake(cfg.Schedule, 1), nil
	}

	if opts.Weight == "" {
		return nil, xerrors.Errorf("%w: a graph path is required", pipeline.ErrInvalidConfig)
	}

	d, ok, err := svcs.DataSvc.RetrieveDescriptor(opts.Weight)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := d.Check(cfg.Schedule, sig); err != nil {
			return nil, xerrors.Errorf("graph %s: %w", opts.Weight, err)
		}
	} else {
		lgr.Logger.Warn("graph has no descriptor, shapes are checked on the first frame",
			slog.String("graph", opts.Weight),
		)
	}

	return inference.NewOpenCV(opts.Weight, sig, svcs.CfgSvc.GetDNNBackend(), svcs.CfgSvc.GetDNNTarget())
}

// matte runs the loop over one source and records its stats. It owns src
// and sink.
func matte(canxCtx context.Context, svcs ServicesFactory, cfg pipeline.Config, engine pipeline.Engine, src pipeline.Source, sink pipeline.Sink, input, output, modeName string, progress bool) error {
	opts := []pipeline.Option{}

	var bar *progressbar.ProgressBar
	if progress {
		total := -1
		if counter, ok := src.(interface{ FrameCount() int }); ok && counter.FrameCount() > 0 {
			total = counter.FrameCount()
		}
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Matting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
		opts = append(opts, pipeline.WithFrameObserver(func(pipeline.FrameData) {
			_ = bar.Add(1)
		}))
	}

	m, err := pipeline.NewMatter(cfg, engine, opts...)
	if err != nil {
		src.Close()
		sink.Close()
		return err
	}

	stats, err := m.Run(canxCtx, src, sink)
	if bar != nil {
		_ = bar.Finish()
	}

	stats.RunID = uuid.NewString()
	stats.Input = input
	stats.Output = output
	stats.Mode = modeName
	procStats(svcs.DataSvc, stats)

	lgr.Logger.Info("matting finished",
		slog.String("runId", stats.RunID),
		slog.String("input", input),
		slog.String("output", output),
		slog.Int("frames", stats.Frames),
		slog.Int("readErrors", stats.ReadErrors),
		slog.Float64("fps", stats.FPS),
		slog.Float64("p95ProcTime", stats.P95ProcTime),
	)

	if err != nil {
		err = lgr.Traced(err)
		procError(svcs.DataSvc, model.GenError(modeName, err, map[string]interface{}{
			"input":  input,
			"output": output,
		}, "matting failed"))
		return err
	}
	return nil
}

// batch pairs every file in inDir that accept takes with the same name in
// outDir and hands each pair to fn. The first failure stops the batch.
func batch(canxCtx context.Context, inDir, outDir string, accept func(string) bool, fn func(in, out string) error) error {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return xerrors.Errorf("error reading input directory %s: %w", inDir, err)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return xerrors.Errorf("error creating output directory %s: %w", outDir, err)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || !accept(e.Name()) {
			continue
		}
		if err := canxCtx.Err(); err != nil {
			return err
		}
		if err := fn(filepath.Join(inDir, e.Name()), filepath.Join(outDir, e.Name())); err != nil {
			return err
		}
		count++
	}

	lgr.Logger.Info("batch finished",
		slog.String("input", inDir),
		slog.String("output", outDir),
		slog.Int("files", count),
	)
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
