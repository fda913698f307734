package exporter

import (
	"context"

	"github.com/khaledhikmat/vs-matting/model"
)

type IService interface {
	Export(ctx context.Context, req model.ExportRequest) error
}
