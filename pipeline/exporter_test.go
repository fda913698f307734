package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhikmat/vs-matting/model"
)

type recordingToolchain struct {
	requests []model.ExportRequest
	err      error
}

func (r *recordingToolchain) Export(_ context.Context, req model.ExportRequest) error {
	r.requests = append(r.requests, req)
	return r.err
}

type recordingStore struct {
	saved []model.Descriptor
}

func (r *recordingStore) SaveDescriptor(d model.Descriptor) error {
	r.saved = append(r.saved, d)
	return nil
}

func TestExportRejectsBadChoicesBeforeBuilding(t *testing.T) {
	tests := []struct {
		name string
		opts ExportOptions
		want error
	}{
		{name: "variant", opts: ExportOptions{Variant: "efficientnet", Output: "out.onnx"}, want: model.ErrInvalidVariant},
		{name: "empty variant", opts: ExportOptions{Output: "out.onnx"}, want: model.ErrInvalidVariant},
		{name: "refiner", opts: ExportOptions{Variant: "mobilenetv3", Refiner: "bilateral", Output: "out.onnx"}, want: model.ErrInvalidRefiner},
		{name: "output", opts: ExportOptions{Variant: "mobilenetv3"}, want: ErrInvalidConfig},
		{name: "signature", opts: ExportOptions{Variant: "mobilenetv3", Output: "out.onnx", Signature: "dynamic"}, want: model.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolchain := &recordingToolchain{}
			store := &recordingStore{}

			_, err := Export(context.Background(), tt.opts, toolchain, store)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, toolchain.requests)
			assert.Empty(t, store.saved)
		})
	}
}

func TestExportBindsFixedShapes(t *testing.T) {
	toolchain := &recordingToolchain{}
	store := &recordingStore{}

	d, err := Export(context.Background(), ExportOptions{
		Variant:    "mobilenetv3",
		Checkpoint: "rvm_mobilenetv3.pth",
		Output:     "rvm_mobilenetv3_1080x1920.onnx",
	}, toolchain, store)
	require.NoError(t, err)

	require.Len(t, toolchain.requests, 1)
	req := toolchain.requests[0]
	assert.Equal(t, model.DeepGuidedFilter, req.Refiner)
	assert.False(t, req.StrictLoad)
	assert.Equal(t, 12, req.Opset)
	assert.True(t, req.ConstantFolding)
	assert.Equal(t, "float32", req.Precision)
	assert.Equal(t, []model.TensorSpec{
		{Name: "img", Shape: []int{1, 3, 1080, 1920}},
		{Name: "s1i", Shape: []int{1, 16, 216, 384}},
		{Name: "s2i", Shape: []int{1, 20, 108, 192}},
		{Name: "s3i", Shape: []int{1, 40, 54, 96}},
		{Name: "s4i", Shape: []int{1, 64, 27, 48}},
	}, req.Inputs)
	assert.Equal(t, []string{"fgr", "alp", "s1o", "s2o", "s3o", "s4o"}, req.Outputs)

	require.Len(t, store.saved, 1)
	assert.Equal(t, d, store.saved[0])
	assert.Equal(t, "static", d.Signature)
	assert.NoError(t, d.Check(model.DefaultSchedule(), model.StaticSignature))
}

func TestExportReturnsToolchainErrorAsIs(t *testing.T) {
	boom := errors.New("checkpoint: no such file")
	toolchain := &recordingToolchain{err: boom}
	store := &recordingStore{}

	_, err := Export(context.Background(), ExportOptions{
		Variant:    "resnet50",
		Refiner:    "fast_guided_filter",
		Checkpoint: "missing.pth",
		Output:     "out.onnx",
	}, toolchain, store)

	assert.Same(t, boom, err)
	assert.Empty(t, store.saved)
}

func TestExportDryRunLeavesNoDescriptor(t *testing.T) {
	toolchain := &recordingToolchain{}
	store := &recordingStore{}

	d, err := Export(context.Background(), ExportOptions{
		Variant: "mobilenetv3",
		Output:  "rvm.onnx",
		DryRun:  true,
	}, toolchain, store)
	require.NoError(t, err)

	assert.Len(t, toolchain.requests, 1)
	assert.Empty(t, store.saved)
	assert.Equal(t, "rvm.onnx", d.Graph)
}
