package types

import "time"

// HTTPConfig holds shared HTTP settings used by collaborators that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "allocations-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AllocationsConfig holds settings for reading the allocations catalog.
type AllocationsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the paged allocations JSON endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// FixtureFile, when set, replaces the HTTP catalog with a YAML file of projects.
	FixtureFile string `json:"fixture_file,omitempty" yaml:"fixture_file,omitempty"`

	// MaxPages is the page scan budget per request (default 10).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// FetchConcurrency is the fan-out width for page fetches (default 5).
	FetchConcurrency int `json:"fetch_concurrency" yaml:"fetch_concurrency"`

	// CacheTTL is how long fetched pages stay valid (default 5m).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// SweepInterval is how often long-lived hosts evict expired pages (default 1m).
	SweepInterval time.Duration `json:"sweep_interval" yaml:"sweep_interval"`
}

// AwardsConfig holds settings for the funding-awards collaborator.
type AwardsConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the awards service root. Empty means the collaborator is not
	// configured and funding correlation degrades to a marker result.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is optional and sent as a bearer token.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// VariantDelay is the pause between consecutive name-variant queries (default 500ms).
	VariantDelay time.Duration `json:"variant_delay" yaml:"variant_delay"`

	// Limit is the per-variant award limit passed to the service (default 10).
	Limit int `json:"limit" yaml:"limit"`
}

// SearchConfig holds defaults for the search operation.
type SearchConfig struct {
	// Limit is the default number of results (default 20, range 1-200).
	Limit int `json:"limit" yaml:"limit"`

	// SortBy is the default sort key (default "relevance").
	SortBy string `json:"sort_by" yaml:"sort_by"`
}

// SimilarConfig holds defaults for the find-similar operation.
type SimilarConfig struct {
	// Threshold is the minimum similarity to report (default 0.4).
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// IncludeSameField enables the exact field-of-science bonus (default true).
	IncludeSameField bool `json:"include_same_field" yaml:"include_same_field"`

	// Limit is the default number of similar projects (default 10).
	Limit int `json:"limit" yaml:"limit"`
}

// EngineConfig groups all engine settings.
type EngineConfig struct {
	Allocations AllocationsConfig `json:"allocations" yaml:"allocations"`
	Awards      AwardsConfig      `json:"awards" yaml:"awards"`
	Search      SearchConfig      `json:"search" yaml:"search"`
	Similar     SimilarConfig     `json:"similar" yaml:"similar"`
}

// WithDefaults returns a copy of cfg with zero values replaced by defaults.
func (cfg EngineConfig) WithDefaults() EngineConfig {
	if cfg.Allocations.MaxPages <= 0 {
		cfg.Allocations.MaxPages = 10
	}
	if cfg.Allocations.FetchConcurrency <= 0 {
		cfg.Allocations.FetchConcurrency = 5
	}
	if cfg.Allocations.CacheTTL <= 0 {
		cfg.Allocations.CacheTTL = 5 * time.Minute
	}
	if cfg.Allocations.SweepInterval <= 0 {
		cfg.Allocations.SweepInterval = time.Minute
	}
	if cfg.Awards.Limit <= 0 {
		cfg.Awards.Limit = 10
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = 20
	}
	if cfg.Search.SortBy == "" {
		cfg.Search.SortBy = "relevance"
	}
	if cfg.Similar.Threshold == 0 {
		cfg.Similar.Threshold = 0.4
	}
	if cfg.Similar.Limit == 0 {
		cfg.Similar.Limit = 10
	}
	return cfg
}
