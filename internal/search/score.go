// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"math"
	"strings"
	"time"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

// Weights are the calibration constants of the relevance scorer. They were
// chosen empirically; tests pin them so a change is deliberate.
type Weights struct {
	PhraseInTitle float64
	PhraseElse    float64
	AndTerm       float64
	OrTerm        float64
	Title         float64
	PI            float64
	Field         float64
	Abstract      float64
	Institution   float64
	MaxScore      float64
}

// DefaultWeights are the weights used by Score.
var DefaultWeights = Weights{
	PhraseInTitle: 5,
	PhraseElse:    3,
	AndTerm:       2,
	OrTerm:        1.5,
	Title:         3,
	PI:            2,
	Field:         1.5,
	Abstract:      1,
	Institution:   0.5,
	MaxScore:      20,
}

// Filters are hard constraints. A project failing any of them scores 0.
type Filters struct {
	// FieldOfScience must be a case-insensitive substring of the project's field.
	FieldOfScience string `json:"field_of_science,omitempty" yaml:"field_of_science,omitempty"`

	// AllocationType must be a case-insensitive substring of the project's allocation type.
	AllocationType string `json:"allocation_type,omitempty" yaml:"allocation_type,omitempty"`

	// StartFrom and StartTo bound the project start date, inclusive.
	StartFrom time.Time `json:"start_from,omitempty" yaml:"start_from,omitempty"`
	StartTo   time.Time `json:"start_to,omitempty" yaml:"start_to,omitempty"`
}

// ScoredResult pairs a project with its relevance score in [0, 20].
type ScoredResult struct {
	Project types.Project `json:"project" yaml:"project"`
	Score   float64       `json:"score" yaml:"score"`
}

// Score computes the relevance of p to q with DefaultWeights.
func Score(p types.Project, q ParsedQuery, f Filters) float64 {
	return ScoreWith(DefaultWeights, p, q, f)
}

// ScoreWith computes the relevance of p to q. A return of 0 means the project
// is excluded: a filter failed, a NOT term matched, or an AND term was missing.
func ScoreWith(w Weights, p types.Project, q ParsedQuery, f Filters) float64 {
	if !passesFilters(p, f) {
		return 0
	}

	negText := p.Abstract + " " + p.Title + " " + p.PI
	for _, t := range q.NotTerms {
		if containsFold(negText, t) {
			return 0
		}
	}

	all := searchableText(p)
	var score float64

	for _, phrase := range q.ExactPhrases {
		switch {
		case containsFold(p.Title, phrase):
			score += w.PhraseInTitle
		case containsFold(all, phrase):
			score += w.PhraseElse
		}
	}

	for _, t := range q.AndTerms {
		if !containsFold(all, t) {
			return 0
		}
		score += w.AndTerm
	}

	for _, t := range q.OrTerms {
		if containsFold(all, t) {
			score += w.OrTerm
		}
	}

	for _, t := range q.RegularTerms {
		if len(t) <= 2 || IsStopWord(t) {
			continue
		}
		switch {
		case containsFold(p.Title, t):
			score += w.Title
		case containsFold(p.PI, t):
			score += w.PI
		case containsFold(p.FieldOfScience, t):
			score += w.Field
		case containsFold(p.Abstract, t):
			score += w.Abstract
		case containsFold(p.Institution, t):
			score += w.Institution
		}
	}

	return math.Min(score, w.MaxScore)
}

func passesFilters(p types.Project, f Filters) bool {
	if f.FieldOfScience != "" && !containsFold(p.FieldOfScience, f.FieldOfScience) {
		return false
	}
	if f.AllocationType != "" && !containsFold(p.AllocationType, f.AllocationType) {
		return false
	}
	if !f.StartFrom.IsZero() && (p.StartDate.IsZero() || p.StartDate.Before(f.StartFrom)) {
		return false
	}
	if !f.StartTo.IsZero() && (p.StartDate.IsZero() || p.StartDate.After(f.StartTo)) {
		return false
	}
	return true
}

// searchableText is every text attribute of p, including resource names, so
// that an AND term like "gpu" can be satisfied by a GPU allocation.
func searchableText(p types.Project) string {
	return strings.Join([]string{
		p.Title, p.Abstract, p.PI, p.Institution,
		p.FieldOfScience, p.AllocationType, p.ResourceNames(),
	}, " ")
}

// ScoreAll scores every project and drops the excluded ones (score 0).
func ScoreAll(projects []types.Project, q ParsedQuery, f Filters) []ScoredResult {
	var out []ScoredResult
	for _, p := range projects {
		if s := Score(p, q, f); s > 0 {
			out = append(out, ScoredResult{Project: p, Score: s})
		}
	}
	return out
}
