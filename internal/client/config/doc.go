// Package config loads runtime configuration for the kiosk, scanner and
// admin binaries.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config, or the CONFIG
//     environment variable.
//  3. Environment variables prefixed with PREPAID_, after a .env file in
//     the working directory (if any) has been loaded into the environment.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL, e.g. https://kiosk.example.org
//	-i int      RFID auto-fill poll interval (seconds)
//	-l string   UI language (de, en)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "1s" or
// plain numbers of seconds:
//
//	{
//	  "server_url": "https://kiosk.example.org",
//	  "rfid_poll_interval": "1s",
//	  "request_timeout": "10s",
//	  "product_search_host": "www.codecheck.info",
//	  "currency": "€",
//	  "locale": "de",
//	  "log_level": "info",
//	  "superuser_password": "",
//	  "order_timeout": "15s",
//	  "reset_barcode": "",
//	  "announce_command": "espeak -v de {msg}"
//	}
//
// Primary API
//
//   - type Config                          holds all settings
//   - func LoadConfig() (*Config, error)   defaults, JSON, env, flags, validation
//   - func (*Config) LoadDefaults()        sets defaults
package config
