// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

// catalog is the set of projects loaded for one request.
type catalog struct {
	projects    []types.Project
	pagesLoaded int
	failedPages []int
}

func (c catalog) degraded() bool { return len(c.failedPages) > 0 }

// find returns the project with the given id.
func (c catalog) find(id int) (types.Project, bool) {
	for _, p := range c.projects {
		if p.ID == id {
			return p, true
		}
	}
	return types.Project{}, false
}

// loadCatalog reads page 1 to learn the page count, then fetches pages
// 2..min(total, MaxPages) through the pool. Every page goes through the
// cache. A page-1 failure is returned; later failures are logged and
// recorded so the caller can report a degraded result. Projects repeated
// across pages are kept once, first page wins.
func (e *Engine) loadCatalog(ctx context.Context, log *slog.Logger) (catalog, error) {
	first, err := e.cache.GetOrFetch(ctx, 1, e.source.FetchPage)
	if err != nil {
		return catalog{}, fmt.Errorf("loading catalog: %w", err)
	}

	last := min(max(first.TotalPages, 1), e.cfg.Allocations.MaxPages)
	pages := make([]types.ProjectPage, last+1)
	errs := make([]error, last+1)
	pages[1] = first

	var wg sync.WaitGroup
	for page := 2; page <= last; page++ {
		page := page
		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()
			pages[page], errs[page] = e.cache.GetOrFetch(ctx, page, e.source.FetchPage)
		})
		if submitErr != nil {
			wg.Done()
			errs[page] = fmt.Errorf("scheduling page %d: %w", page, submitErr)
		}
	}
	wg.Wait()

	out := catalog{}
	seen := make(map[int]bool)
	for page := 1; page <= last; page++ {
		if errs[page] != nil {
			log.Warn("page fetch failed", "page", page, "error", errs[page])
			out.failedPages = append(out.failedPages, page)
			continue
		}
		out.pagesLoaded++
		for _, p := range pages[page].Projects {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			out.projects = append(out.projects, p)
		}
	}
	log.Debug("catalog loaded",
		"projects", len(out.projects),
		"pages", out.pagesLoaded,
		"total_pages", first.TotalPages,
		"failed", len(out.failedPages))
	return out, nil
}
