package exporter

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/service/config"
)

func TestCommandPipesRequestToTool(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	captured := filepath.Join(dir, "request.json")
	script := filepath.Join(dir, "tool.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncat > \"$1\"\necho exported\n"), 0755))

	t.Setenv(config.EnvExportTool, "sh "+script+" "+captured)
	svc := NewCommand(config.NewEnv())

	req := model.ExportRequest{
		Variant: model.MobileNetV3,
		Refiner: model.DeepGuidedFilter,
		Output:  filepath.Join(dir, "rvm.onnx"),
		Opset:   12,
		Inputs:  []model.TensorSpec{{Name: "img", Shape: []int{1, 3, 1080, 1920}}},
		Outputs: []string{"fgr", "alp"},
	}
	require.NoError(t, svc.Export(context.Background(), req))

	data, err := os.ReadFile(captured)
	require.NoError(t, err)

	var got model.ExportRequest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, req, got)
}

func TestCommandSurfacesToolFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	t.Setenv(config.EnvExportTool, "sh -c false")
	svc := NewCommand(config.NewEnv())

	err := svc.Export(context.Background(), model.ExportRequest{})
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
}

func TestFakeRecordsRequests(t *testing.T) {
	svc := NewFake()
	require.NoError(t, svc.Export(context.Background(), model.ExportRequest{Output: "a.onnx"}))
	require.Len(t, svc.Requests, 1)
	assert.Equal(t, "a.onnx", svc.Requests[0].Output)
}
