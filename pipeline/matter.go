package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

// Matter runs the recurrent matting network over a stream of frames, one
// frame at a time, carrying the network state from each call to the next.
type Matter struct {
	cfg       Config
	engine    Engine
	tracer    trace.Tracer
	observers []FrameObserver
}

type Option func(*Matter)

func WithTracer(tracer trace.Tracer) Option {
	return func(m *Matter) {
		m.tracer = tracer
	}
}

func WithFrameObserver(observer FrameObserver) Option {
	return func(m *Matter) {
		m.observers = append(m.observers, observer)
	}
}

func NewMatter(cfg Config, engine Engine, opts ...Option) (*Matter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: no inference engine", ErrInvalidConfig)
	}

	m := &Matter{
		cfg:    cfg,
		engine: engine,
		tracer: noop.NewTracerProvider().Tracer("pipeline"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Run consumes src until it is exhausted or unreadable and writes one frame
// to sink per frame read. Run owns both and closes them before returning.
// A read failure ends the run normally; inference, shape and write failures
// are returned.
func (m *Matter) Run(ctx context.Context, src Source, sink Sink) (stats model.RunStats, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil {
			lgr.Logger.Warn("error closing frame source", slog.Any("error", cerr))
		}
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing frame sink: %w", cerr)
		}
	}()

	total := 0
	if counter, ok := src.(interface{ FrameCount() int }); ok {
		total = counter.FrameCount()
	}

	startTime := time.Now()
	procTimes := []float64{}
	defer func() {
		stats = summarize(stats, procTimes, time.Since(startTime))
	}()

	state := model.ZeroState(m.cfg.Schedule.StateShapes())

	for index := 1; ; index++ {
		if err := ctx.Err(); err != nil {
			lgr.Logger.Info("matter context cancelled", slog.Int("frame", index))
			return stats, err
		}

		frame, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.ReadErrors++
			lgr.Logger.Warn("can not read frame, stopping",
				slog.Int("frame", index),
				slog.Any("error", err),
			)
			break
		}

		startInference := time.Now()
		next, err := m.step(ctx, index, frame, state, sink)
		if err != nil {
			err = lgr.Traced(fmt.Errorf("frame %d: %w", index, err))
			lgr.Logger.Error("matting failed", slog.Int("frame", index), slog.Any("error", err))
			return stats, err
		}
		state = next

		procTime := time.Since(startInference)
		procTimes = append(procTimes, procTime.Seconds())
		stats.Frames++

		for _, observer := range m.observers {
			observer(FrameData{
				Index:     index,
				Total:     total,
				ProcTime:  procTime,
				Timestamp: time.Now(),
			})
		}
	}

	return stats, nil
}

// step runs one frame through inference and writes the composite. It returns
// the state the next frame must be fed.
func (m *Matter) step(ctx context.Context, index int, frame *image.RGBA, state model.State, sink Sink) (model.State, error) {
	ctx, span := m.tracer.Start(ctx, "matter.frame", trace.WithAttributes(attribute.Int("frame", index)))
	defer span.End()

	w, h := m.cfg.Schedule.Width, m.cfg.Schedule.Height
	resized := Resize(frame, w, h)

	res, err := m.engine.Infer(ctx, Normalize(resized), state)
	if err != nil {
		span.RecordError(err)
		return state, err
	}
	if err := res.State.CheckShapes(m.cfg.Schedule.StateShapes()); err != nil {
		return state, err
	}

	out, err := Composite(res, resized, m.cfg)
	if err != nil {
		return state, err
	}

	size := sink.Size()
	if size.X <= 0 || size.Y <= 0 {
		size = frame.Bounds().Size()
	}
	if err := sink.Write(Resize(out, size.X, size.Y)); err != nil {
		span.RecordError(err)
		return state, err
	}

	lgr.Logger.DebugContext(ctx, "frame matted",
		slog.Int("frame", index),
		slog.Int("width", size.X),
		slog.Int("height", size.Y),
	)
	return res.State, nil
}
