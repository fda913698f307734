package config

type IService interface {
	GetStatsFolder() string
	GetLogFile() string
	GetLogLevel() string

	GetInputWidth() int
	GetInputHeight() int
	GetDownsampleRatio() float64
	GetModelVariant() string
	GetModelRefiner() string
	GetSignature() string

	GetBackgroundColor() string
	GetOutputFPS() float64
	GetOutputCodec() string
	GetOutputMode() string

	GetDNNBackend() string
	GetDNNTarget() string
	GetExportTool() string
}
