package mode

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/pipeline"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

// Export builds a graph through the configured toolchain and leaves its
// descriptor next to it.
func Export(canxCtx context.Context, svcs ServicesFactory, opts pipeline.ExportOptions) error {
	if opts.Signature == "" {
		opts.Signature = svcs.CfgSvc.GetSignature()
	}
	if opts.Refiner == "" {
		opts.Refiner = svcs.CfgSvc.GetModelRefiner()
	}
	if opts.Width == 0 {
		opts.Width = svcs.CfgSvc.GetInputWidth()
	}
	if opts.Height == 0 {
		opts.Height = svcs.CfgSvc.GetInputHeight()
	}
	if opts.DownsampleRatio == 0 {
		opts.DownsampleRatio = svcs.CfgSvc.GetDownsampleRatio()
	}

	startTime := time.Now()
	d, err := pipeline.Export(canxCtx, opts, svcs.ExporterSvc, svcs.DataSvc)
	if err != nil {
		err = lgr.Traced(err)
		procError(svcs.DataSvc, model.GenError("export", err, map[string]interface{}{
			"variant": opts.Variant,
			"output":  opts.Output,
		}, "export failed"))
		return err
	}

	stats := model.ExportStats{
		RunID:     uuid.NewString(),
		Variant:   string(d.Variant),
		Refiner:   string(d.Refiner),
		Output:    d.Graph,
		Uptime:    time.Since(startTime).Seconds(),
		Timestamp: time.Now().Unix(),
	}
	procStats(svcs.DataSvc, stats)

	lgr.Logger.Info("graph exported",
		slog.String("runId", stats.RunID),
		slog.String("graph", d.Graph),
		slog.Any("inputs", d.Inputs),
	)
	return nil
}
