package commands

import (
	"errors"
	"os"
	"time"

	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/configutil"
	"sheetfetch/internal/fetch"
)

type HttpConfig struct {
	TimeoutSeconds    int     `json:"timeout_seconds"`
	UserAgent         string  `json:"user_agent"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Burst             int     `json:"burst"`
	BypassCloudflare  bool    `json:"bypass_cloudflare"`
	DumpDir           string  `json:"dump_dir"`
}

func (c HttpConfig) TransportOptions() fetch.TransportOptions {
	opts := fetch.DefaultTransportOptions()
	if c.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	if c.UserAgent != "" {
		opts.UserAgent = c.UserAgent
	}
	if c.RequestsPerSecond > 0 {
		opts.RequestsPerSecond = c.RequestsPerSecond
	}
	if c.Burst > 0 {
		opts.Burst = c.Burst
	}
	opts.BypassCloudflare = c.BypassCloudflare
	opts.DumpDir = c.DumpDir
	return opts
}

type SettingsConfig struct {
	// File is a json5 file holding a `settings` object, the config file itself when empty.
	File            string `json:"file"`
	Sqlite          string `json:"sqlite"`
	LibsqlUrl       string `json:"libsql_url"`
	LibsqlAuthToken string `json:"libsql_auth_token"`
}

type Config struct {
	Http      HttpConfig       `json:"http"`
	Store     SettingsConfig   `json:"settings_store"`
	Telemetry telemetry.Config `json:"telemetry"`
	// Timezone is the IANA name of the zone dates are evaluated in, local time when empty.
	Timezone string `json:"timezone"`
}

// loadConfig reads the config at path, a missing file is the zero config.
func loadConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return config, err
}
