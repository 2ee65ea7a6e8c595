// Package main is the entry point for the lunarcal command.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zapponejosh/lunarcal/internal/astro"
	"github.com/zapponejosh/lunarcal/internal/cli"
	"github.com/zapponejosh/lunarcal/internal/config"
	"github.com/zapponejosh/lunarcal/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	app := &cli.App{
		Name:    filepath.Base(os.Args[0]),
		Config:  cfg,
		Logger:  log,
		Gateway: astro.New(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Now:     time.Now,
	}

	os.Exit(cli.Execute(context.Background(), app, os.Args[1:]))
}
