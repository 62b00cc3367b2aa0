package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/prepaidmate/internal/flagx"
)

// FlagNames lists every flag Load reads, all of them taking a value.
var FlagNames = []string{"-a", "-i", "-l", "-c", "-config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL (default from Config)
//	-i int      RFID poll interval in seconds (default from Config)
//	-l string   UI language (default from Config)
//
// Note: args are filtered to the flags known here using flagx.FilterArgs,
// so binaries can define their own flags next to these.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-l"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(flagx.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	pollInterval := fs.Int("i", int(cfg.RFIDPollInterval.Seconds()), "RFID poll interval (in seconds)")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "UI language (de, en)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.RFIDPollInterval = time.Duration(*pollInterval) * time.Second
		}
	})
	return nil
}
