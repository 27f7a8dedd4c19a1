// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/allocations-engine/internal/correlate"
	"github.com/pdiddy/allocations-engine/internal/search"
	"github.com/pdiddy/allocations-engine/internal/similar"
	"github.com/pdiddy/allocations-engine/internal/variants"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

// Search parses req.Query, scores every loaded project, ranks the matches,
// and truncates to the limit. A zero limit or sort uses the configured
// default.
func (e *Engine) Search(ctx context.Context, req search.Request) (search.Output, error) {
	if strings.TrimSpace(req.Query) == "" {
		return search.Output{}, ErrEmptyQuery
	}
	q := search.ParseQuery(req.Query)
	if q.IsEmpty() {
		return search.Output{}, ErrEmptyQuery
	}

	limit, err := e.limit(req.Limit, e.cfg.Search.Limit)
	if err != nil {
		return search.Output{}, err
	}
	sortKey := string(req.SortBy)
	if sortKey == "" {
		sortKey = e.cfg.Search.SortBy
	}
	by, err := search.ParseSortBy(sortKey)
	if err != nil {
		return search.Output{}, invalid("sort", "%q is not one of %v", sortKey, search.SortKeys)
	}
	f := req.Filters
	if !f.StartFrom.IsZero() && !f.StartTo.IsZero() && f.StartFrom.After(f.StartTo) {
		return search.Output{}, invalid("date range", "start %s is after end %s",
			f.StartFrom.Format("2006-01-02"), f.StartTo.Format("2006-01-02"))
	}

	log := e.requestLogger("search")
	cat, err := e.loadCatalog(ctx, log)
	if err != nil {
		return search.Output{}, err
	}

	results, matched, err := search.Run(cat.projects, q, f, by, limit)
	if err != nil {
		return search.Output{}, err
	}
	log.Info("search complete", "query", req.Query, "considered", len(cat.projects), "matched", matched)

	return search.Output{
		Query:       q,
		Results:     results,
		Considered:  len(cat.projects),
		Matched:     matched,
		PagesLoaded: cat.pagesLoaded,
		FailedPages: cat.failedPages,
		Degraded:    cat.degraded(),
	}, nil
}

// SimilarRequest selects a reference by project id or by keywords.
type SimilarRequest struct {
	// ProjectID names the reference project. Zero selects keyword mode.
	ProjectID int
	// Keywords is the reference text in keyword mode.
	Keywords string
	// Field is the reference field of science in keyword mode.
	Field            string
	Threshold        float64
	IncludeSameField bool
	Limit            int
}

// SimilarOutput is a similarity ranking and its metadata.
type SimilarOutput struct {
	Reference   similar.Reference `json:"reference"`
	Project     *types.Project    `json:"project,omitempty"`
	Results     []similar.Result  `json:"results"`
	Considered  int               `json:"considered"`
	PagesLoaded int               `json:"pages_loaded"`
	FailedPages []int             `json:"failed_pages,omitempty"`
	Degraded    bool              `json:"degraded"`
}

// FindSimilar ranks loaded projects by similarity to a reference project or
// to free keywords. The reference project is never compared with itself.
func (e *Engine) FindSimilar(ctx context.Context, req SimilarRequest) (SimilarOutput, error) {
	if req.ProjectID < 0 {
		return SimilarOutput{}, invalid("project id", "%d is negative", req.ProjectID)
	}
	if req.ProjectID == 0 && strings.TrimSpace(req.Keywords) == "" {
		return SimilarOutput{}, invalid("reference", "a project id or keywords are required")
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		return SimilarOutput{}, invalid("threshold", "%g is outside [0, 1]", req.Threshold)
	}
	limit, err := e.limit(req.Limit, e.cfg.Similar.Limit)
	if err != nil {
		return SimilarOutput{}, err
	}

	log := e.requestLogger("similar")
	cat, err := e.loadCatalog(ctx, log)
	if err != nil {
		return SimilarOutput{}, err
	}

	out := SimilarOutput{
		Considered:  len(cat.projects),
		PagesLoaded: cat.pagesLoaded,
		FailedPages: cat.failedPages,
		Degraded:    cat.degraded(),
	}
	if req.ProjectID > 0 {
		p, ok := cat.find(req.ProjectID)
		if !ok {
			return out, fmt.Errorf("project %d: %w", req.ProjectID, ErrNotFound)
		}
		out.Project = &p
		out.Reference = similar.ReferenceFor(p)
		out.Considered--
	} else {
		out.Reference = similar.KeywordReference(req.Keywords, req.Field)
	}

	out.Results = similar.Rank(out.Reference, cat.projects, similar.Options{
		Threshold:        req.Threshold,
		IncludeSameField: req.IncludeSameField,
		Limit:            limit,
	})
	if out.Results == nil {
		out.Results = []similar.Result{}
	}
	log.Info("similarity complete", "signature", out.Reference.Signature, "results", len(out.Results))
	return out, nil
}

// GenerateNameVariants returns the person-name variants of name.
func (e *Engine) GenerateNameVariants(name string) []string {
	return variants.PersonNames(name)
}

// GenerateInstitutionVariants returns the institution-name variants of name.
func (e *Engine) GenerateInstitutionVariants(name string) []string {
	return variants.Institutions(name)
}

// CorrelateFunding finds the validated awards of a project's PI. An
// unconfigured awards service yields a correlation with status
// collaborator_unavailable, not an error. Errors come only from validation,
// catalog loading, or an unknown project id.
func (e *Engine) CorrelateFunding(ctx context.Context, projectID int) (correlate.Correlation, error) {
	if projectID <= 0 {
		return correlate.Correlation{}, invalid("project id", "%d must be positive", projectID)
	}

	log := e.requestLogger("correlate")
	cat, err := e.loadCatalog(ctx, log)
	if err != nil {
		return correlate.Correlation{}, err
	}
	p, ok := cat.find(projectID)
	if !ok {
		return correlate.Correlation{}, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
	}

	corr := e.correlator.Correlate(ctx, p)
	log.Info("correlation complete",
		"project", p.ID,
		"status", corr.Status,
		"raw", corr.Diagnostics.RawCandidates,
		"validated", corr.Diagnostics.InstitutionValidated)
	return corr, nil
}

// CorrelateInstitution correlates up to limit projects whose institution
// matches the variants of institution.
func (e *Engine) CorrelateInstitution(ctx context.Context, institution string, limit int) (correlate.InstitutionCorrelation, error) {
	if strings.TrimSpace(institution) == "" {
		return correlate.InstitutionCorrelation{}, invalid("institution", "must not be empty")
	}
	limit, err := e.limit(limit, e.cfg.Similar.Limit)
	if err != nil {
		return correlate.InstitutionCorrelation{}, err
	}

	log := e.requestLogger("correlate-institution")
	cat, err := e.loadCatalog(ctx, log)
	if err != nil {
		return correlate.InstitutionCorrelation{}, err
	}

	agg := e.correlator.CorrelateInstitution(ctx, institution, cat.projects, limit)
	log.Info("institution correlation complete",
		"institution", institution,
		"projects", agg.ProjectsMatched,
		"validated", agg.ValidatedProjects,
		"status", agg.Status)
	return agg, nil
}

// limit applies the default for zero and rejects values outside [1, MaxLimit].
func (e *Engine) limit(n, def int) (int, error) {
	if n == 0 {
		n = def
	}
	if n < 1 || n > MaxLimit {
		return 0, invalid("limit", "%d is outside [1, %d]", n, MaxLimit)
	}
	return n, nil
}
