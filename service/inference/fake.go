package inference

import (
	"context"

	"github.com/khaledhikmat/vs-matting/model"
)

type fakeService struct {
	Schedule model.Schedule
	Alpha    float32
}

// NewFake echoes the input frame as foreground with a constant alpha and
// hands the state back unchanged. It needs no graph, so it serves dry runs.
func NewFake(schedule model.Schedule, alpha float32) IService {
	return &fakeService{
		Schedule: schedule,
		Alpha:    alpha,
	}
}

func (svc *fakeService) Infer(_ context.Context, src model.Tensor, state model.State) (model.Result, error) {
	alpha := model.NewTensor(svc.Schedule.AlphaShape()...)
	for i := range alpha.Data {
		alpha.Data[i] = svc.Alpha
	}

	return model.Result{
		Foreground: src.Clone(),
		Alpha:      alpha,
		State:      state,
	}, nil
}

func (svc *fakeService) Close() error {
	return nil
}
