package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/prepaidmate/internal/admin"
	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
	"github.com/dmitrijs2005/prepaidmate/internal/client/config"
	"github.com/dmitrijs2005/prepaidmate/internal/flagx"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.InsecureTransport() {
		logger.Warn(ctx, "superuser password is sent unencrypted, use https", "server_url", cfg.ServerURL)
	}

	api, err := client.NewPrepaidClient(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a := admin.New(api, cfg.SuperuserPassword, os.Stdin, os.Stdout, logger)
	code := admin.Run(ctx, a, flagx.Positional(os.Args[1:], config.FlagNames), os.Stderr)

	stop()
	os.Exit(code)

}
