package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings shared by all binaries.
//
// Units: every interval is a time.Duration (e.g., 1*time.Second).
type Config struct {
	ServerURL         string        `validate:"required,url,startswith=http"`
	RFIDPollInterval  time.Duration `validate:"gt=0"`
	RequestTimeout    time.Duration `validate:"gt=0"`
	ProductSearchHost string        `validate:"required,hostname"`
	Currency          string
	Locale            string `validate:"oneof=de en"`
	LogLevel          string `validate:"oneof=debug info warn error"`
	SuperuserPassword string
	OrderTimeout      time.Duration `validate:"gt=0"`
	ResetBarcode      string
	AnnounceCommand   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RFIDPollInterval = time.Second
	c.RequestTimeout = 10 * time.Second
	c.ProductSearchHost = "www.codecheck.info"
	c.Currency = "€"
	c.Locale = "de"
	c.LogLevel = "info"
	c.OrderTimeout = 15 * time.Second
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], DefaultEnvFile)
}

// Load applies defaults, then the JSON file, the env file and environment,
// and finally the flags in args. The result is validated.
func Load(args []string, envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envFile); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// InsecureTransport reports whether passwords would travel unencrypted to a
// host other than the local machine.
func (c *Config) InsecureTransport() bool {
	u, err := url.Parse(c.ServerURL)
	if err != nil || !strings.EqualFold(u.Scheme, "http") {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return false
	}
	ip := net.ParseIP(host)
	return ip == nil || !ip.IsLoopback()
}
