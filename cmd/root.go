package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khaledhikmat/vs-matting/mode"
	"github.com/khaledhikmat/vs-matting/service/config"
	"github.com/khaledhikmat/vs-matting/service/data"
	"github.com/khaledhikmat/vs-matting/service/exporter"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

const Version = "0.1.0"

var (
	// svcs is shared by the subcommands once the root pre-run has built it
	svcs     mode.ServicesFactory
	logLevel string
	logFile  io.Closer
)

var rootCmd = &cobra.Command{
	Use:     "vs-matting",
	Short:   "Export and run recurrent video matting graphs",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgSvc := config.NewEnv()

		level := logLevel
		if level == "" {
			level = cfgSvc.GetLogLevel()
		}
		logFile = lgr.Configure(lgr.Options{
			Level:      level,
			File:       cfgSvc.GetLogFile(),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})

		svcs = mode.ServicesFactory{
			CfgSvc:      cfgSvc,
			DataSvc:     data.NewFilesDB(cfgSvc),
			ExporterSvc: exporter.NewCommand(cfgSvc),
		}
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		lgr.Logger.Error("command failed", slog.Any("error", lgr.Traced(err)))
	}
	// post-run hooks are skipped when RunE fails, so the log file closes here
	closeLog()
	return err
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from MATTING_LOG_LEVEL)")
}
