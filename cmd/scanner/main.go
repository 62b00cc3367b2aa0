package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/prepaidmate/internal/buildinfo"
	"github.com/dmitrijs2005/prepaidmate/internal/client/client"
	"github.com/dmitrijs2005/prepaidmate/internal/client/config"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/common"
	"github.com/dmitrijs2005/prepaidmate/internal/logging"
	"github.com/dmitrijs2005/prepaidmate/internal/scanner"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.SuperuserPassword == "" {
		log.Fatalf("%v", common.ErrNoSuperuserPassword)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.InsecureTransport() {
		logger.Warn(ctx, "superuser password is sent unencrypted, use https", "server_url", cfg.ServerURL)
	}

	loc, err := locale.New(cfg.Locale)
	if err != nil {
		log.Fatalf("%v", err)
	}

	api, err := client.NewPrepaidClient(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	s := scanner.New(api, cfg.SuperuserPassword,
		scanner.WithLogger(logger),
		scanner.WithLocale(loc),
		scanner.WithAnnouncer(scanner.NewAnnouncer(cfg.AnnounceCommand, logger)),
		scanner.WithOrderTimeout(cfg.OrderTimeout),
		scanner.WithResetBarcode(cfg.ResetBarcode),
	)

	if err := s.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}

}
