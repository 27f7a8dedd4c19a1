// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the public surface of the allocations engine. It owns the
// page cache and the page-fetch pool and exposes search, find-similar, name
// variant generation, and funding correlation over a ProjectSource.
package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/pdiddy/allocations-engine/internal/cache"
	"github.com/pdiddy/allocations-engine/internal/correlate"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

// MaxLimit bounds every result limit.
const MaxLimit = 200

// ProjectSource is the allocations catalog. FetchPage must be idempotent
// and free of side effects.
type ProjectSource interface {
	FetchPage(ctx context.Context, page int) (types.ProjectPage, error)
}

// Engine answers search, similarity, and correlation requests. It is safe
// for concurrent use.
type Engine struct {
	source     ProjectSource
	cfg        types.EngineConfig
	cache      *cache.PageCache
	pool       *ants.Pool
	awards     correlate.AwardsService
	correlator *correlate.Correlator
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithAwards sets the awards collaborator. Without it funding correlation
// reports collaborator_unavailable.
func WithAwards(svc correlate.AwardsService) Option {
	return func(e *Engine) error {
		e.awards = svc
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithCache shares a page cache between engines. Default is a private cache
// with the configured TTL.
func WithCache(c *cache.PageCache) Option {
	return func(e *Engine) error {
		if c != nil {
			e.cache = c
		}
		return nil
	}
}

// New creates an Engine. Zero config values take their defaults. Call
// Release when done.
func New(source ProjectSource, cfg types.EngineConfig, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	cfg = cfg.WithDefaults()

	e := &Engine{
		source: source,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.cache == nil {
		e.cache = cache.New(cfg.Allocations.CacheTTL)
	}

	pool, err := ants.NewPool(cfg.Allocations.FetchConcurrency)
	if err != nil {
		return nil, err
	}
	e.pool = pool

	copts := []correlate.Option{
		correlate.WithLimit(cfg.Awards.Limit),
		correlate.WithLogger(e.logger.With("component", "correlate")),
	}
	if cfg.Awards.VariantDelay > 0 {
		copts = append(copts, correlate.WithDelay(cfg.Awards.VariantDelay))
	}
	e.correlator = correlate.New(e.awards, copts...)
	return e, nil
}

// Release frees the fetch pool. The engine must not be used afterwards.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() types.EngineConfig { return e.cfg }

// Cache returns the page cache so hosts can schedule sweeps.
func (e *Engine) Cache() *cache.PageCache { return e.cache }

// EvictExpired drops expired cache pages and returns how many were removed.
func (e *Engine) EvictExpired() int { return e.cache.EvictExpired() }

// AwardsAvailable reports whether funding correlation can reach a service.
func (e *Engine) AwardsAvailable() bool { return e.correlator.Available() }

func (e *Engine) requestLogger(op string) *slog.Logger {
	return e.logger.With("op", op, "request_id", uuid.NewString())
}
