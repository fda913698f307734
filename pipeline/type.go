package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/khaledhikmat/vs-matting/model"
)

// Source yields frames until it returns io.EOF.
type Source interface {
	Read() (*image.RGBA, error)
	Close() error
}

// Sink receives composited frames. Size reports the resolution frames are
// resized to before Write; a zero size keeps the source resolution.
type Sink interface {
	Size() image.Point
	Write(frame *image.RGBA) error
	Close() error
}

// Engine runs one step of the recurrent network.
type Engine interface {
	Infer(ctx context.Context, src model.Tensor, state model.State) (model.Result, error)
}

// FrameData is reported to frame observers after each written frame.
type FrameData struct {
	Index     int
	Total     int
	ProcTime  time.Duration
	Timestamp time.Time
}

type FrameObserver func(FrameData)
