package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/khaledhikmat/vs-matting/service/lgr"
)

// Environment variables read by the env service. Unset or malformed values
// fall back to the defaults below.
const (
	EnvStatsFolder     = "MATTING_STATS_FOLDER"
	EnvLogFile         = "MATTING_LOG_FILE"
	EnvLogLevel        = "MATTING_LOG_LEVEL"
	EnvInputWidth      = "MATTING_INPUT_WIDTH"
	EnvInputHeight     = "MATTING_INPUT_HEIGHT"
	EnvDownsampleRatio = "MATTING_DOWNSAMPLE_RATIO"
	EnvModelVariant    = "MATTING_MODEL_VARIANT"
	EnvModelRefiner    = "MATTING_MODEL_REFINER"
	EnvSignature       = "MATTING_SIGNATURE"
	EnvBackgroundColor = "MATTING_BACKGROUND"
	EnvOutputFPS       = "MATTING_OUTPUT_FPS"
	EnvOutputCodec     = "MATTING_OUTPUT_CODEC"
	EnvOutputMode      = "MATTING_OUTPUT_MODE"
	EnvDNNBackend      = "MATTING_DNN_BACKEND"
	EnvDNNTarget       = "MATTING_DNN_TARGET"
	EnvExportTool      = "MATTING_EXPORT_TOOL"
)

type envService struct {
	lookup func(string) (string, bool)
}

func NewEnv() IService {
	return &envService{
		lookup: os.LookupEnv,
	}
}

func (svc *envService) GetStatsFolder() string {
	return svc.str(EnvStatsFolder, "./stats")
}

func (svc *envService) GetLogFile() string {
	return svc.str(EnvLogFile, "matting.log")
}

func (svc *envService) GetLogLevel() string {
	return svc.str(EnvLogLevel, "info")
}

func (svc *envService) GetInputWidth() int {
	return svc.intVal(EnvInputWidth, 1920)
}

func (svc *envService) GetInputHeight() int {
	return svc.intVal(EnvInputHeight, 1080)
}

func (svc *envService) GetDownsampleRatio() float64 {
	return svc.floatVal(EnvDownsampleRatio, 0.4)
}

func (svc *envService) GetModelVariant() string {
	return svc.str(EnvModelVariant, "mobilenetv3")
}

func (svc *envService) GetModelRefiner() string {
	return svc.str(EnvModelRefiner, "deep_guided_filter")
}

func (svc *envService) GetSignature() string {
	return svc.str(EnvSignature, "static")
}

func (svc *envService) GetBackgroundColor() string {
	return svc.str(EnvBackgroundColor, "0.47,1.0,0.6")
}

func (svc *envService) GetOutputFPS() float64 {
	return svc.floatVal(EnvOutputFPS, 25)
}

func (svc *envService) GetOutputCodec() string {
	return svc.str(EnvOutputCodec, "mp4v")
}

func (svc *envService) GetOutputMode() string {
	return svc.str(EnvOutputMode, "composite")
}

func (svc *envService) GetDNNBackend() string {
	return svc.str(EnvDNNBackend, "default")
}

func (svc *envService) GetDNNTarget() string {
	return svc.str(EnvDNNTarget, "cpu")
}

func (svc *envService) GetExportTool() string {
	return svc.str(EnvExportTool, "python3 export_onnx_static.py")
}

func (svc *envService) str(key, def string) string {
	v, ok := svc.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func (svc *envService) intVal(key string, def int) int {
	v := svc.str(key, "")
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		lgr.Logger.Warn("ignoring malformed config value",
			slog.String("key", key),
			slog.String("value", v),
		)
		return def
	}
	return i
}

func (svc *envService) floatVal(key string, def float64) float64 {
	v := svc.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		lgr.Logger.Warn("ignoring malformed config value",
			slog.String("key", key),
			slog.String("value", v),
		)
		return def
	}
	return f
}
