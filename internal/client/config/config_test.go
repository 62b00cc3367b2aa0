package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

// clearEnv makes sure no outer CONFIG / PREPAID_* variable leaks into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG", "")
	for _, name := range []string{
		"SERVER_URL", "RFID_POLL_INTERVAL", "REQUEST_TIMEOUT", "PRODUCT_SEARCH_HOST",
		"CURRENCY", "LOCALE", "LOG_LEVEL", "SUPERUSER_PASSWORD", "ORDER_TIMEOUT",
		"RESET_BARCODE", "ANNOUNCE_COMMAND",
	} {
		t.Setenv(envPrefix+name, "")
		os.Unsetenv(envPrefix + name)
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5000", c.ServerURL)
	assert.Equal(t, time.Second, c.RFIDPollInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "www.codecheck.info", c.ProductSearchHost)
	assert.Equal(t, "€", c.Currency)
	assert.Equal(t, "de", c.Locale)
	assert.Equal(t, 15*time.Second, c.OrderTimeout)
	require.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.ServerURL)
	assert.Equal(t, time.Second, cfg.RFIDPollInterval)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	path := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"server_url":         "https://json.example",
		"rfid_poll_interval": "5s",
		"locale":             "en",
		"currency":           "EUR",
		"order_timeout":      20,
	})
	t.Setenv("PREPAID_SERVER_URL", "https://env.example")
	t.Setenv("PREPAID_ORDER_TIMEOUT", "30")

	cfg, err := Load([]string{"-c", path, "-i", "2", "-unknown", "x"}, "")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.ServerURL)
	assert.Equal(t, 2*time.Second, cfg.RFIDPollInterval)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 30*time.Second, cfg.OrderTimeout)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)

	cfg, err = Load([]string{"-config=" + path, "-a", "https://flag.example", "-l", "de"}, "")
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.ServerURL)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, 5*time.Second, cfg.RFIDPollInterval)
}

func TestLoad_IntegerDurationsAreSeconds(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"rfid_poll_interval": 2,
		"order_timeout":      20,
	})

	fromFile, err := Load([]string{"-c", path}, "")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, fromFile.RFIDPollInterval)
	assert.Equal(t, 20*time.Second, fromFile.OrderTimeout)

	t.Setenv("PREPAID_RFID_POLL_INTERVAL", "2")
	fromEnv, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, fromFile.RFIDPollInterval, fromEnv.RFIDPollInterval)
}

func TestLoad_ConfigFromEnvVar(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, "", "", map[string]any{"product_search_host": "shop.example"})
	t.Setenv("CONFIG", path)

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "shop.example", cfg.ProductSearchHost)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PREPAID_SUPERUSER_PASSWORD=s3cret\nPREPAID_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PREPAID_SUPERUSER_PASSWORD")
		os.Unsetenv("PREPAID_LOG_LEVEL")
	})

	cfg, err := Load(nil, envFile)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.SuperuserPassword)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "invalid json", args: []string{"-c", bad}},
		{name: "missing json", args: []string{"-c", filepath.Join(dir, "missing.json")}},
		{name: "bad interval flag", args: []string{"-i", "abc"}},
		{name: "zero interval", args: []string{"-i", "0"}},
		{name: "unsupported locale", args: []string{"-l", "fr"}},
		{name: "not a url", args: []string{"-a", "localhost"}},
		{name: "bad env duration", env: map[string]string{"PREPAID_REQUEST_TIMEOUT": "soon"}},
		{name: "bad log level", env: map[string]string{"PREPAID_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args, "")
			require.Error(t, err)
		})
	}
}

func TestInsecureTransport(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"http://127.0.0.1:5000", false},
		{"http://localhost:5000", false},
		{"http://[::1]:5000", false},
		{"https://kiosk.example.org", false},
		{"http://kiosk.example.org", true},
		{"http://10.0.0.5:5000", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c := Config{ServerURL: tt.url}
			assert.Equal(t, tt.want, c.InsecureTransport())
		})
	}
}
