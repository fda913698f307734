package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

const exportOpset = 12

// Toolchain serializes a network bound to fixed example inputs.
type Toolchain interface {
	Export(ctx context.Context, req model.ExportRequest) error
}

type DescriptorStore interface {
	SaveDescriptor(d model.Descriptor) error
}

type ExportOptions struct {
	Variant         string
	Refiner         string
	Checkpoint      string
	Output          string
	Signature       string
	Width           int
	Height          int
	DownsampleRatio float64
	// DryRun builds no graph, so no descriptor is written for it.
	DryRun bool
}

// BuildExportRequest validates the options and binds every input to the
// shape the schedule derives for it. Nothing is built or invoked here.
func BuildExportRequest(opts ExportOptions) (model.ExportRequest, model.Schedule, model.Signature, error) {
	variant, err := model.ParseVariant(opts.Variant)
	if err != nil {
		return model.ExportRequest{}, model.Schedule{}, model.Signature{}, err
	}

	refiner := model.DeepGuidedFilter
	if opts.Refiner != "" {
		if refiner, err = model.ParseRefiner(opts.Refiner); err != nil {
			return model.ExportRequest{}, model.Schedule{}, model.Signature{}, err
		}
	}

	if opts.Output == "" {
		return model.ExportRequest{}, model.Schedule{}, model.Signature{}, fmt.Errorf("%w: export output path is required", ErrInvalidConfig)
	}

	sigName := opts.Signature
	if sigName == "" {
		sigName = model.StaticSignature.Name
	}
	sig, err := model.LookupSignature(sigName)
	if err != nil {
		return model.ExportRequest{}, model.Schedule{}, model.Signature{}, err
	}

	width, height, ratio := opts.Width, opts.Height, opts.DownsampleRatio
	if width == 0 {
		width = model.DefaultInputWidth
	}
	if height == 0 {
		height = model.DefaultInputHeight
	}
	if ratio == 0 {
		ratio = model.DefaultDownsampleRatio
	}
	schedule, err := model.NewSchedule(variant, width, height, ratio)
	if err != nil {
		return model.ExportRequest{}, model.Schedule{}, model.Signature{}, err
	}

	req := model.ExportRequest{
		Variant:         variant,
		Refiner:         refiner,
		Checkpoint:      opts.Checkpoint,
		StrictLoad:      false,
		Output:          opts.Output,
		Precision:       "float32",
		Device:          "cpu",
		Opset:           exportOpset,
		ExportParams:    true,
		ConstantFolding: true,
		Inputs:          model.InputSpecs(sig, schedule),
		Outputs:         sig.Outputs(),
	}
	return req, schedule, sig, nil
}

// Export drives the toolchain and records the shapes the graph was bound to.
// Toolchain failures are returned as they are.
func Export(ctx context.Context, opts ExportOptions, toolchain Toolchain, store DescriptorStore) (model.Descriptor, error) {
	req, schedule, sig, err := BuildExportRequest(opts)
	if err != nil {
		return model.Descriptor{}, err
	}

	lgr.Logger.Info("exporting graph",
		slog.String("variant", string(req.Variant)),
		slog.String("refiner", string(req.Refiner)),
		slog.String("checkpoint", req.Checkpoint),
		slog.String("output", req.Output),
		slog.Any("inputs", req.Inputs),
		slog.Any("outputs", req.Outputs),
	)

	if err := toolchain.Export(ctx, req); err != nil {
		return model.Descriptor{}, err
	}

	d := model.Descriptor{
		Graph:      req.Output,
		Variant:    req.Variant,
		Refiner:    req.Refiner,
		Checkpoint: req.Checkpoint,
		Opset:      req.Opset,
		Signature:  sig.Name,
		Schedule:   schedule,
		Inputs:     req.Inputs,
		Outputs:    req.Outputs,
		CreatedAt:  time.Now().Unix(),
	}
	if opts.DryRun {
		lgr.Logger.Info("dry run, descriptor not saved", slog.Any("descriptor", d))
		return d, nil
	}
	if err := store.SaveDescriptor(d); err != nil {
		return d, fmt.Errorf("error saving graph descriptor: %w", err)
	}
	return d, nil
}
