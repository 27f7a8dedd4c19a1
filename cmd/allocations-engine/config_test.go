// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/allocations-engine/internal/secrets"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	setConfigDefaults()
	t.Cleanup(func() {
		viper.Reset()
		loadedSecrets = nil
	})
}

func TestLoadEngineConfigDefaults(t *testing.T) {
	resetConfig(t)
	cfg := loadEngineConfig()

	assert.Equal(t, 10, cfg.Allocations.MaxPages)
	assert.Equal(t, 5*time.Minute, cfg.Allocations.CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Awards.VariantDelay)
	assert.Equal(t, 20, cfg.Search.Limit)
	assert.Equal(t, "relevance", cfg.Search.SortBy)
	assert.Equal(t, 0.4, cfg.Similar.Threshold)
	assert.True(t, cfg.Similar.IncludeSameField)
	assert.Empty(t, cfg.Awards.BaseURL)
}

func TestLoadEngineConfigAPIKey(t *testing.T) {
	resetConfig(t)
	loadedSecrets = secrets.Secrets{"awards-api-key": "from-secret"}
	assert.Equal(t, "from-secret", loadEngineConfig().Awards.APIKey)

	viper.Set("awards.api_key", "from-config")
	assert.Equal(t, "from-config", loadEngineConfig().Awards.APIKey)
}

func TestNewEngine(t *testing.T) {
	resetConfig(t)
	viper.Set("allocations.fixture_file", "../../testdata/projects.yaml")

	eng, err := newEngine(loadEngineConfig())
	require.NoError(t, err)
	defer eng.Release()
	assert.False(t, eng.AwardsAvailable())

	viper.Set("awards.base_url", "http://awards.example")
	eng2, err := newEngine(loadEngineConfig())
	require.NoError(t, err)
	defer eng2.Release()
	assert.True(t, eng2.AwardsAvailable())
}

func TestNewEngineMissingFixture(t *testing.T) {
	resetConfig(t)
	viper.Set("allocations.fixture_file", "does-not-exist.yaml")
	_, err := newEngine(loadEngineConfig())
	assert.ErrorContains(t, err, "reading fixture")
}
