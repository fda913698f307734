package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/khaledhikmat/vs-matting/cmd"
	"github.com/khaledhikmat/vs-matting/service/lgr"
)

func main() {
	// Load env vars if we are in DEV mode
	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			lgr.Logger.Error("error loading .env file", slog.Any("error", lgr.Traced(err)))
			os.Exit(1)
		}
	}

	cmd.Execute()
}
