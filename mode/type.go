package mode

import (
	"context"
	"log/slog"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/pipeline"
	"github.com/khaledhikmat/vs-matting/service/config"
	"github.com/khaledhikmat/vs-matting/service/data"
	"github.com/khaledhikmat/vs-matting/service/exporter"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

type ServicesFactory struct {
	CfgSvc      config.IService
	DataSvc     data.IService
	ExporterSvc exporter.IService
}

// InferOptions carries the inference flags. Zero values fall back to config.
type InferOptions struct {
	Weight          string
	Input           string
	Output          string
	Signature       string
	Variant         string
	Width           int
	Height          int
	DownsampleRatio float64
	Background      string
	// FPS below zero defers to config; zero follows the source.
	FPS        float64
	OutputMode string
	Codec      string
	Progress   bool
	// Fake swaps the graph for an engine that echoes the input.
	Fake bool
}

// Processor runs one inference mode.
type Processor func(canxCtx context.Context, svcs ServicesFactory, opts InferOptions) error

var Processors = map[string]Processor{
	"video": Video,
	"img":   Image,
}

// BuildConfig resolves the loop configuration from flags and config.
func BuildConfig(cfgSvc config.IService, opts InferOptions) (pipeline.Config, model.Signature, error) {
	variant, err := model.ParseVariant(or(opts.Variant, cfgSvc.GetModelVariant()))
	if err != nil {
		return pipeline.Config{}, model.Signature{}, err
	}

	signature, err := model.LookupSignature(or(opts.Signature, cfgSvc.GetSignature()))
	if err != nil {
		return pipeline.Config{}, model.Signature{}, err
	}

	width, height, ratio := opts.Width, opts.Height, opts.DownsampleRatio
	if width == 0 {
		width = cfgSvc.GetInputWidth()
	}
	if height == 0 {
		height = cfgSvc.GetInputHeight()
	}
	if ratio == 0 {
		ratio = cfgSvc.GetDownsampleRatio()
	}
	schedule, err := model.NewSchedule(variant, width, height, ratio)
	if err != nil {
		return pipeline.Config{}, model.Signature{}, err
	}

	background, err := pipeline.ParseColor(or(opts.Background, cfgSvc.GetBackgroundColor()))
	if err != nil {
		return pipeline.Config{}, model.Signature{}, err
	}

	mode, err := pipeline.ParseMode(or(opts.OutputMode, cfgSvc.GetOutputMode()))
	if err != nil {
		return pipeline.Config{}, model.Signature{}, err
	}

	fps := opts.FPS
	if fps < 0 {
		fps = cfgSvc.GetOutputFPS()
	}

	cfg := pipeline.Config{
		Schedule:   schedule,
		Background: background,
		OutputFPS:  fps,
		Mode:       mode,
	}
	return cfg, signature, cfg.Validate()
}

func or(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func procStats(datasvc data.IService, stats interface{}) {
	var err error
	switch stats := stats.(type) {
	case model.RunStats:
		err = datasvc.NewRunStats(stats)
	case model.ExportStats:
		err = datasvc.NewExportStats(stats)
	default:
		lgr.Logger.Error(
			"unknown stats type",
			slog.Any("stats", stats),
		)
		return
	}

	if err != nil {
		lgr.Logger.Error(
			"failed to store stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procError(datasvc data.IService, err interface{}) {
	errTemp := datasvc.NewError(err)
	if errTemp != nil {
		lgr.Logger.Error(
			"failed to store error",
			slog.Any("error", errTemp),
		)
	}
}
