// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the stargazer recommendation service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/wneessen/stargazer/internal/cache"
	"github.com/wneessen/stargazer/internal/config"
	"github.com/wneessen/stargazer/internal/forecast"
	forecastastro "github.com/wneessen/stargazer/internal/forecast/provider/astrospheric"
	openmeteo "github.com/wneessen/stargazer/internal/forecast/provider/open-meteo"
	"github.com/wneessen/stargazer/internal/geocode"
	"github.com/wneessen/stargazer/internal/geocode/provider/census"
	nominatim "github.com/wneessen/stargazer/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/stargazer/internal/http"
	"github.com/wneessen/stargazer/internal/logger"
	"github.com/wneessen/stargazer/internal/server"
	"github.com/wneessen/stargazer/internal/service"
	"github.com/wneessen/stargazer/internal/sky"
	skyastro "github.com/wneessen/stargazer/internal/sky/provider/astrospheric"
	"github.com/wneessen/stargazer/internal/sky/provider/local"
	"github.com/wneessen/stargazer/internal/timezone"
	"github.com/wneessen/stargazer/internal/timezone/provider/timezonedb"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT,
		os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	// A .env file is optional, environment wins either way
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load .env file", logger.Err(err))
	}

	// Read config
	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	// Read default config
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	// If config file was specified, read it
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	// Check if we have a config file in the default location
	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	log = logger.New(conf.LogLevel)
	httpClient := http.New(log)

	// Geocoding: US Census first for ZIP codes, Nominatim for everything else
	geocoder := geocode.NewChain(log,
		census.New(httpClient, log),
		nominatim.New(httpClient, log, language.English),
	)

	// Timezone lookup degrades to a coarse bounding-box fallback
	timezones := timezone.NewResolver(log,
		timezonedb.New(httpClient, log, conf.Providers.TimeZoneDBKey),
	)

	// Forecast: Astrospheric primary, Open-Meteo fallback
	openMeteo, err := openmeteo.New(log, conf.Units, conf.Providers.Timeout)
	if err != nil {
		log.Error("failed to create Open-Meteo provider", logger.Err(err))
		os.Exit(1)
	}
	forecasts := forecast.NewChain(log,
		forecastastro.New(httpClient, log, conf.Providers.AstrosphericKey,
			int(conf.Providers.ForecastHours), conf.Providers.Timeout),
		openMeteo,
	)

	// Sky data: Astrospheric primary, local computation fallback
	localSky, err := local.New(log)
	if err != nil {
		log.Error("failed to create local sky data provider", logger.Err(err))
		os.Exit(1)
	}
	skies := sky.NewChain(log,
		skyastro.New(httpClient, log, conf.Providers.AstrosphericKey, conf.Providers.Timeout),
		localSky,
	)

	store := cache.New()
	svc := service.New(log, store, geocoder, timezones, forecasts, skies, service.TTLs{
		Geocode:  conf.Cache.GeocodeTTL,
		Forecast: conf.Cache.ForecastTTL,
		Sky:      conf.Cache.SkyTTL,
	})

	// Periodic cache sweep
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Error("failed to create scheduler", logger.Err(err))
		os.Exit(1)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(conf.Cache.SweepInterval),
		gocron.NewTask(func(context.Context) {
			if evicted := store.Sweep(); evicted > 0 {
				log.Debug("cache sweep completed", slog.Int("evicted", evicted))
			}
		}),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("cache_sweep_job"),
	)
	if err != nil {
		log.Error("failed to create cache_sweep_job", logger.Err(err))
		os.Exit(1)
	}
	scheduler.Start()

	srv := server.New(log, svc)
	go func() {
		log.Info("starting stargazer service", slog.String("addr", conf.ListenAddr),
			slog.String("version", version), slog.String("commit", commit), slog.String("date", date))
		if err := srv.Listen(conf.ListenAddr); err != nil {
			log.Error("failed to start HTTP server", logger.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down stargazer service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down HTTP server", logger.Err(err))
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Error("failed to shut down scheduler", logger.Err(err))
	}
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "stargazer", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
