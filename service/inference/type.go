package inference

import (
	"context"

	"github.com/khaledhikmat/vs-matting/model"
)

// IService steps the recurrent matting network once: given a frame tensor
// and the current state it returns foreground, alpha and the next state.
type IService interface {
	Infer(ctx context.Context, src model.Tensor, state model.State) (model.Result, error)
	Close() error
}
