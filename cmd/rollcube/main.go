// Package main is the entry point for the rollcube client.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/rollcube/internal/app"
	"github.com/Faultbox/rollcube/internal/config"
	"github.com/Faultbox/rollcube/internal/logger"
)

// terminalLogFile receives logs when the terminal surface owns stdout.
const terminalLogFile = "rollcube.log"

func main() {
	// Parse CLI flags first
	config.ParseFlags()
	os.Exit(run())
}

// run returns the process exit code so every deferred cleanup has run
// before main exits.
func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== rollcube ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exitCode(a.Run(ctx))
}

// exitCode maps the run result; an interrupt is a normal close.
func exitCode(err error) int {
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("app error", zap.Error(err))
		return 1
	}
	logger.Info("closed normally")
	return 0
}

// initLogger keeps the console free when the terminal surface draws on it.
func initLogger(cfg *config.Config) error {
	if cfg.Graphics.Surface != config.SurfaceTerminal {
		return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	path := cfg.Logging.LogFile
	if path == "" {
		path = terminalLogFile
	}
	return logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(path), nil)
}
