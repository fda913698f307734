package inference

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unsafe"

	"gocv.io/x/gocv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

type opencvService struct {
	net       gocv.Net
	signature model.Signature
}

// NewOpenCV loads an ONNX graph, or an OpenVINO IR (.xml with its .bin),
// into OpenCV's DNN module.
// WARNING: net is not thread-safe!!! One service serves one loop.
func NewOpenCV(modelPath string, signature model.Signature, backend, target string) (IService, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, xerrors.Errorf("no matting model at %s: %w", modelPath, err)
	}

	config := ""
	if strings.EqualFold(filepath.Ext(modelPath), ".xml") {
		config = strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".bin"
	}

	lgr.Logger.Info("loading matting model",
		slog.String("model", modelPath),
		slog.String("config", config),
		slog.String("backend", backend),
		slog.String("target", target),
		slog.String("openCV", gocv.Version()),
	)

	net := gocv.ReadNet(modelPath, config)
	if net.Empty() {
		return nil, xerrors.Errorf("error reading matting model %s", modelPath)
	}

	if err := net.SetPreferableBackend(gocv.ParseNetBackend(backend)); err != nil {
		net.Close()
		return nil, xerrors.Errorf("error setting backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.ParseNetTarget(target)); err != nil {
		net.Close()
		return nil, xerrors.Errorf("error setting target: %w", err)
	}

	lgr.Logger.Info("matting model loaded",
		slog.Any("inputs", signature.Inputs()),
		slog.Any("outputs", signature.Outputs()),
	)

	return &opencvService{
		net:       net,
		signature: signature,
	}, nil
}

func (svc *opencvService) Infer(ctx context.Context, src model.Tensor, state model.State) (model.Result, error) {
	if err := ctx.Err(); err != nil {
		return model.Result{}, err
	}

	inputs := append([]model.Tensor{src}, state[:]...)
	names := svc.signature.Inputs()

	blobs := make([]gocv.Mat, 0, len(inputs))
	defer func() {
		for _, b := range blobs {
			b.Close()
		}
	}()

	for i, t := range inputs {
		blob, err := tensorToMat(t)
		if err != nil {
			return model.Result{}, xerrors.Errorf("input %s: %w", names[i], err)
		}
		blobs = append(blobs, blob)
		svc.net.SetInput(blob, names[i])
	}

	outputs := svc.net.ForwardLayers(svc.signature.Outputs())
	runtime.KeepAlive(inputs)
	defer func() {
		for _, o := range outputs {
			o.Close()
		}
	}()

	if len(outputs) != len(svc.signature.Outputs()) {
		return model.Result{}, xerrors.Errorf("model returned %d outputs, want %d", len(outputs), len(svc.signature.Outputs()))
	}

	tensors := make([]model.Tensor, len(outputs))
	for i, o := range outputs {
		t, err := matToTensor(o)
		if err != nil {
			return model.Result{}, xerrors.Errorf("output %s: %w", svc.signature.Outputs()[i], err)
		}
		tensors[i] = t
	}

	res := model.Result{
		Foreground: tensors[0],
		Alpha:      tensors[1],
	}
	copy(res.State[:], tensors[2:])
	return res, nil
}

func (svc *opencvService) Close() error {
	return svc.net.Close()
}

func tensorToMat(t model.Tensor) (gocv.Mat, error) {
	if len(t.Data) == 0 || len(t.Data) != model.Volume(t.Shape) {
		return gocv.Mat{}, fmt.Errorf("%w: %v holds %d values", model.ErrShapeMismatch, t.Shape, len(t.Data))
	}
	// the blob may alias t.Data until the forward pass returns
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&t.Data[0])), len(t.Data)*4)
	return gocv.NewMatWithSizesFromBytes(t.Shape, gocv.MatTypeCV32F, raw)
}

func matToTensor(m gocv.Mat) (model.Tensor, error) {
	data, err := m.DataPtrFloat32()
	if err != nil {
		return model.Tensor{}, err
	}
	shape := m.Size()
	if len(data) != model.Volume(shape) {
		return model.Tensor{}, fmt.Errorf("%w: blob %v holds %d values", model.ErrShapeMismatch, shape, len(data))
	}
	return model.Tensor{
		Shape: shape,
		Data:  slices.Clone(data),
	}, nil
}
