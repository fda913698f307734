package model

import (
	"fmt"
	"runtime/debug"
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func (e CustomError) Error() string {
	if e.Inner == nil {
		return fmt.Sprintf("%s: %s", e.Processor, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Processor, e.Message, e.Inner)
}

func (e CustomError) Unwrap() error {
	return e.Inner
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

// RunStats summarizes one pass of the streaming loop over a source.
type RunStats struct {
	RunID       string  `json:"runId"`
	Input       string  `json:"input"`
	Output      string  `json:"output"`
	Mode        string  `json:"mode"`
	Frames      int     `json:"frames"`
	ReadErrors  int     `json:"readErrors"`
	Uptime      float64 `json:"uptime"`
	FPS         float64 `json:"fps"`
	AvgProcTime float64 `json:"avgProcTime"`
	P95ProcTime float64 `json:"p95ProcTime"`
	Timestamp   int64   `json:"timestamp"`
}

type ExportStats struct {
	RunID     string  `json:"runId"`
	Variant   string  `json:"variant"`
	Refiner   string  `json:"refiner"`
	Output    string  `json:"output"`
	Uptime    float64 `json:"uptime"`
	Timestamp int64   `json:"timestamp"`
}
