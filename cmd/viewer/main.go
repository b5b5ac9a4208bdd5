// Package main is the entry point for the 3D model viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/app"
	"github.com/Faultbox/gldemos/internal/config"
	"github.com/Faultbox/gldemos/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return -1
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return -1
		}
		fmt.Printf("Config written to %s\n", path)
		return 0
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return -1
	}
	defer logger.Sync()

	logger.Info("=== 3D Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, "3D Viewer")
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return -1
	}
	defer a.Close()

	demo := app.NewViewer(cfg, a)
	defer demo.Close()

	a.Run(demo)
	logger.Info("closed normally")
	return 0
}
