package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/prepaidmate/internal/buildinfo"
	"github.com/dmitrijs2005/prepaidmate/internal/client/cli"
	"github.com/dmitrijs2005/prepaidmate/internal/client/config"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.InsecureTransport() {
		logger.Warn(ctx, "passwords are sent unencrypted, use https", "server_url", cfg.ServerURL)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
