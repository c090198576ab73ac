package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/dmitrijs2005/sharkbite/internal/buildinfo"
	"github.com/dmitrijs2005/sharkbite/internal/cli"
	"github.com/dmitrijs2005/sharkbite/internal/config"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info(ctx, "shutting down", "signal", sig.String())
		cancel()
		if err := app.Close(context.Background()); err != nil {
			logger.Error(ctx, "flush on shutdown failed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()

	app.Run(ctx)

	if err := app.Close(context.Background()); err != nil {
		logger.Error(ctx, "flush on shutdown failed", "error", err)
		os.Exit(1)
	}
}
