package exporter

import (
	"context"
	"sync"

	"github.com/khaledhikmat/vs-matting/model"
)

type FakeService struct {
	mu       sync.Mutex
	Requests []model.ExportRequest
}

// NewFake records requests without producing a graph. It backs --dry-run.
func NewFake() *FakeService {
	return &FakeService{}
}

func (svc *FakeService) Export(_ context.Context, req model.ExportRequest) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.Requests = append(svc.Requests, req)
	return nil
}
