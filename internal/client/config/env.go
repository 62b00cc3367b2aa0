package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

const envPrefix = "PREPAID_"

// parseEnv loads envFile (variables already set in the environment win) and
// overlays cfg with PREPAID_* variables. A missing env file is fine.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	strs := map[string]*string{
		"SERVER_URL":          &cfg.ServerURL,
		"PRODUCT_SEARCH_HOST": &cfg.ProductSearchHost,
		"CURRENCY":            &cfg.Currency,
		"LOCALE":              &cfg.Locale,
		"LOG_LEVEL":           &cfg.LogLevel,
		"SUPERUSER_PASSWORD":  &cfg.SuperuserPassword,
		"RESET_BARCODE":       &cfg.ResetBarcode,
		"ANNOUNCE_COMMAND":    &cfg.AnnounceCommand,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"RFID_POLL_INTERVAL": &cfg.RFIDPollInterval,
		"REQUEST_TIMEOUT":    &cfg.RequestTimeout,
		"ORDER_TIMEOUT":      &cfg.OrderTimeout,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}
	return nil
}

// parseDuration accepts Go durations ("1500ms") and plain seconds ("2").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
