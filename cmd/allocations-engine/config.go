// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/allocations-engine/internal/allocations"
	"github.com/pdiddy/allocations-engine/internal/awards"
	"github.com/pdiddy/allocations-engine/internal/engine"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "allocations-engine/0.1"
)

// bindFlag binds a viper key to a flag. Binding only fails for a nil flag,
// which is a programming error.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func setConfigDefaults() {
	viper.SetDefault("allocations.timeout", defaultTimeout)
	viper.SetDefault("allocations.user_agent", defaultUserAgent)
	viper.SetDefault("allocations.max_pages", 10)
	viper.SetDefault("allocations.fetch_concurrency", 5)
	viper.SetDefault("allocations.cache_ttl", 5*time.Minute)
	viper.SetDefault("allocations.sweep_interval", time.Minute)

	viper.SetDefault("awards.timeout", defaultTimeout)
	viper.SetDefault("awards.user_agent", defaultUserAgent)
	viper.SetDefault("awards.variant_delay", 500*time.Millisecond)
	viper.SetDefault("awards.limit", 10)

	viper.SetDefault("search.limit", 20)
	viper.SetDefault("search.sort_by", "relevance")

	viper.SetDefault("similar.threshold", 0.4)
	viper.SetDefault("similar.include_same_field", true)
	viper.SetDefault("similar.limit", 10)

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.max_size_mb", 20)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("secrets_dir", ".secrets/")
}

// loadEngineConfig reads the engine settings from viper. The awards API key
// falls back to the awards-api-key secret.
func loadEngineConfig() types.EngineConfig {
	return types.EngineConfig{
		Allocations: types.AllocationsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("allocations.timeout"),
				UserAgent: viper.GetString("allocations.user_agent"),
			},
			BaseURL:          viper.GetString("allocations.base_url"),
			FixtureFile:      viper.GetString("allocations.fixture_file"),
			MaxPages:         viper.GetInt("allocations.max_pages"),
			FetchConcurrency: viper.GetInt("allocations.fetch_concurrency"),
			CacheTTL:         viper.GetDuration("allocations.cache_ttl"),
			SweepInterval:    viper.GetDuration("allocations.sweep_interval"),
		},
		Awards: types.AwardsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("awards.timeout"),
				UserAgent: viper.GetString("awards.user_agent"),
			},
			BaseURL:      viper.GetString("awards.base_url"),
			APIKey:       loadedSecrets.Get("awards-api-key", viper.GetString("awards.api_key")),
			VariantDelay: viper.GetDuration("awards.variant_delay"),
			Limit:        viper.GetInt("awards.limit"),
		},
		Search: types.SearchConfig{
			Limit:  viper.GetInt("search.limit"),
			SortBy: viper.GetString("search.sort_by"),
		},
		Similar: types.SimilarConfig{
			Threshold:        viper.GetFloat64("similar.threshold"),
			IncludeSameField: viper.GetBool("similar.include_same_field"),
			Limit:            viper.GetInt("similar.limit"),
		},
	}
}

// newEngine builds an engine from cfg. A fixture file replaces the HTTP
// catalog. An unconfigured awards service is not an error: correlation then
// reports collaborator_unavailable.
func newEngine(cfg types.EngineConfig) (*engine.Engine, error) {
	var source engine.ProjectSource
	if cfg.Allocations.FixtureFile != "" {
		fs, err := allocations.LoadFixture(cfg.Allocations.FixtureFile)
		if err != nil {
			return nil, err
		}
		source = fs
	} else {
		source = allocations.NewClient(cfg.Allocations)
	}

	opts := []engine.Option{engine.WithLogger(slog.Default())}
	client, err := awards.NewClient(cfg.Awards)
	switch {
	case err == nil:
		opts = append(opts, engine.WithAwards(client))
	case errors.Is(err, awards.ErrNotConfigured):
		slog.Debug("awards service not configured, funding correlation disabled")
	default:
		return nil, err
	}

	return engine.New(source, cfg, opts...)
}
