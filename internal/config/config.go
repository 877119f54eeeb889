// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
)

const configEnv = "STARGAZER"

// Config represents the application's configuration structure.
type Config struct {
	ListenAddr string     `fig:"listen_addr" default:":8080"`
	LogLevel   slog.Level `fig:"loglevel" default:"0"`
	// Allowed values: metric, imperial
	Units string `fig:"units" default:"imperial"`

	Providers struct {
		AstrosphericKey string `fig:"astrospheric_key"`
		TimeZoneDBKey   string `fig:"timezonedb_key"`
		// Timeout bounds every single upstream API call
		Timeout time.Duration `fig:"timeout" default:"5s"`
		// Allowed values: 1 to 168
		ForecastHours uint `fig:"forecast_hours" default:"96"`
	} `fig:"providers"`

	Cache struct {
		GeocodeTTL    time.Duration `fig:"geocode_ttl" default:"720h"`
		ForecastTTL   time.Duration `fig:"forecast_ttl" default:"6h"`
		SkyTTL        time.Duration `fig:"sky_ttl" default:"12h"`
		SweepInterval time.Duration `fig:"sweep_interval" default:"10m"`
	} `fig:"cache"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.Providers.ForecastHours < 1 || c.Providers.ForecastHours > 168 {
		return fmt.Errorf("invalid forecast hours: %d", c.Providers.ForecastHours)
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("invalid provider timeout: %s", c.Providers.Timeout)
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("invalid cache sweep interval: %s", c.Cache.SweepInterval)
	}

	return nil
}
