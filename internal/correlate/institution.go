// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package correlate

import (
	"context"

	"github.com/pdiddy/allocations-engine/internal/variants"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

// InstitutionCorrelation aggregates the correlations of every project at one
// institution.
type InstitutionCorrelation struct {
	Institution       string        `json:"institution"`
	Variants          []string      `json:"variants"`
	ProjectsMatched   int           `json:"projects_matched"`
	ValidatedProjects int           `json:"validated_projects"`
	DistinctAwards    int           `json:"distinct_awards"`
	TotalAwardAmount  float64       `json:"total_award_amount"`
	Status            Status        `json:"status"`
	Correlations      []Correlation `json:"correlations"`
}

// ProjectsAt returns the projects whose institution matches one of the
// variants of institution, in input order.
func ProjectsAt(institution string, projects []types.Project) []types.Project {
	inst := variants.Institutions(institution)
	var out []types.Project
	for _, p := range projects {
		if variants.MatchInstitutionVariants(inst, p.Institution) {
			out = append(out, p)
		}
	}
	return out
}

// CorrelateInstitution correlates up to limit projects at institution. Awards
// shared by several projects are counted once in the totals. A non-positive
// limit means no limit.
func (c *Correlator) CorrelateInstitution(ctx context.Context, institution string, projects []types.Project, limit int) InstitutionCorrelation {
	out := InstitutionCorrelation{
		Institution:  institution,
		Variants:     variants.Institutions(institution),
		Status:       StatusNoMatches,
		Correlations: []Correlation{},
	}

	matched := ProjectsAt(institution, projects)
	out.ProjectsMatched = len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	if c.service == nil {
		out.Status = StatusUnavailable
		return out
	}

	seen := make(map[string]bool)
	unavailable := 0
	for i, p := range matched {
		if i > 0 {
			if err := c.wait(ctx); err != nil {
				break
			}
		}
		corr := c.Correlate(ctx, p)
		out.Correlations = append(out.Correlations, corr)
		if corr.Status == StatusUnavailable {
			unavailable++
		}
		if !corr.Validated {
			continue
		}
		out.ValidatedProjects++
		for _, a := range corr.Awards {
			if seen[a.AwardNumber] {
				continue
			}
			seen[a.AwardNumber] = true
			out.DistinctAwards++
			out.TotalAwardAmount += a.Amount
		}
	}

	switch {
	case out.ValidatedProjects > 0:
		out.Status = StatusOK
	case ctx.Err() != nil:
		out.Status = StatusDeadline
	case len(out.Correlations) > 0 && unavailable == len(out.Correlations):
		out.Status = StatusUnavailable
	}
	return out
}
