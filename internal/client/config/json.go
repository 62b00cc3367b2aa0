package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/flagx"
	"github.com/dmitrijs2005/prepaidmate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" from "empty", so a partial file only overrides what
// it names.
type JsonConfig struct {
	ServerURL         *string         `json:"server_url"`
	RFIDPollInterval  *timex.Duration `json:"rfid_poll_interval"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	ProductSearchHost *string         `json:"product_search_host"`
	Currency          *string         `json:"currency"`
	Locale            *string         `json:"locale"`
	LogLevel          *string         `json:"log_level"`
	SuperuserPassword *string         `json:"superuser_password"`
	OrderTimeout      *timex.Duration `json:"order_timeout"`
	ResetBarcode      *string         `json:"reset_barcode"`
	AnnounceCommand   *string         `json:"announce_command"`
}

// parseJson overlays cfg with the file named by -c / -config in args or by
// the CONFIG environment variable. No file named means nothing to do.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setDuration(&cfg.RFIDPollInterval, jc.RFIDPollInterval)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setString(&cfg.ProductSearchHost, jc.ProductSearchHost)
	setString(&cfg.Currency, jc.Currency)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.SuperuserPassword, jc.SuperuserPassword)
	setDuration(&cfg.OrderTimeout, jc.OrderTimeout)
	setString(&cfg.ResetBarcode, jc.ResetBarcode)
	setString(&cfg.AnnounceCommand, jc.AnnounceCommand)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
