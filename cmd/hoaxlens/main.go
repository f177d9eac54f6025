// Command hoaxlens detects hoaxes and manipulated media.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/hoaxlens/internal/adapters/driving/cli"
	"github.com/custodia-labs/hoaxlens/internal/app"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

func main() {
	// A .env file in the working directory may set HOAXLENS_* overrides and HF_TOKEN.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("loading .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, app.Build); err != nil {
		stop()
		os.Exit(1)
	}
}
