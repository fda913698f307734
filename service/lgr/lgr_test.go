package lgr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdobak/go-xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestConfigureWritesConsoleAndFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "matting.log")

	closer := Configure(Options{
		Level:   "debug",
		File:    file,
		MaxSize: 1,
		Console: &console,
	})

	Logger.Debug("debug line", slog.Int("frame", 7))
	Logger.Error("failed", slog.Any("error", xerrors.New("boom")))
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "debug line")
	assert.Contains(t, console.String(), "frame=7")
	assert.Contains(t, console.String(), "boom")

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	errAttr, ok := rec["error"].(map[string]any)
	require.True(t, ok, "error attribute should be a group: %v", rec["error"])
	assert.Equal(t, "boom", errAttr["msg"])
	assert.NotEmpty(t, errAttr["trace"])
}

func TestLevelFiltering(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var console bytes.Buffer
	Configure(Options{Level: "warn", Console: &console})

	Logger.Info("quiet")
	Logger.Warn("loud")

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
}

func TestTraceIDsAreAttached(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var console bytes.Buffer
	Configure(Options{Level: "info", Console: &console})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	Logger.InfoContext(ctx, "traced")
	Logger.Info("untraced")

	out := console.String()
	assert.Contains(t, out, "trace_id="+sc.TraceID().String())
	assert.Contains(t, out, "span_id="+sc.SpanID().String())
	assert.Equal(t, 1, bytes.Count(console.Bytes(), []byte("trace_id=")))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestTracedAddsStackOnce(t *testing.T) {
	assert.Nil(t, Traced(nil))

	plain := fmt.Errorf("frame 3: %w", io.ErrShortWrite)
	traced := Traced(plain)
	assert.NotEmpty(t, xerrors.StackTrace(traced))
	assert.ErrorIs(t, traced, io.ErrShortWrite)
	assert.Equal(t, plain.Error(), traced.Error())

	// a wrapped error that already carries a trace keeps it
	inner := xerrors.New("boom")
	wrapped := fmt.Errorf("export: %w", inner)
	assert.Same(t, wrapped, Traced(wrapped))
}

func TestFileLogTracesPlainErrors(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	file := filepath.Join(t.TempDir(), "matting.log")
	closer := Configure(Options{Level: "info", File: file, Console: io.Discard})

	Logger.Error("failed", slog.Any("error", Traced(fmt.Errorf("frame 3: %w", errors.New("disk full")))))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	errAttr, ok := rec["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "frame 3: disk full", errAttr["msg"])
	assert.NotEmpty(t, errAttr["trace"])
}
