package exporter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/xerrors"

	"github.com/khaledhikmat/vs-matting/model"
	"github.com/khaledhikmat/vs-matting/service/config"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

type commandService struct {
	CfgSvc config.IService
}

// NewCommand runs the configured export tool once per request. The request
// is written as JSON to the tool's stdin; its output is relayed to the log.
func NewCommand(cfgsvc config.IService) IService {
	return &commandService{
		CfgSvc: cfgsvc,
	}
}

func (svc *commandService) Export(ctx context.Context, req model.ExportRequest) error {
	args := strings.Fields(svc.CfgSvc.GetExportTool())
	if len(args) == 0 {
		return xerrors.New("no export tool configured")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = bytes.NewReader(payload)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	lgr.Logger.Info("starting export tool",
		slog.String("tool", args[0]),
		slog.Any("args", args[1:]),
	)

	if err := cmd.Start(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go relay(&wg, stdout, slog.LevelInfo)
	go relay(&wg, stderr, slog.LevelWarn)
	wg.Wait()

	return cmd.Wait()
}

func relay(wg *sync.WaitGroup, r io.Reader, level slog.Level) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lgr.Logger.Log(context.Background(), level, "export tool", slog.String("line", scanner.Text()))
	}
}
