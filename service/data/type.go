package data

import "github.com/khaledhikmat/vs-matting/model"

type IService interface {
	SaveDescriptor(d model.Descriptor) error
	RetrieveDescriptor(graph string) (model.Descriptor, bool, error)

	NewError(err interface{}) error
	NewRunStats(stats model.RunStats) error
	NewExportStats(stats model.ExportStats) error
	RetrieveRunStats() ([]model.RunStats, error)
}
