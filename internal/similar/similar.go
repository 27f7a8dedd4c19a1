// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similar

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

// Weights are the calibration constants of the similarity scorer.
type Weights struct {
	SameField      float64
	RelatedField   float64
	TitleTerm      float64
	AbstractTerm   float64
	Coherence      float64
	CoherenceFloor float64
	Resource       float64
}

// DefaultWeights are the weights used by Score.
var DefaultWeights = Weights{
	SameField:      0.4,
	RelatedField:   0.2,
	TitleTerm:      0.15,
	AbstractTerm:   0.05,
	Coherence:      0.10,
	CoherenceFloor: 0.5,
	Resource:       0.10,
}

// Band groups similarity values for presentation.
type Band string

const (
	BandHigh     Band = "high"
	BandModerate Band = "moderate"
	BandLow      Band = "low"
)

// BandFor returns the band of a similarity value.
func BandFor(sim float64) Band {
	switch {
	case sim >= 0.7:
		return BandHigh
	case sim >= 0.4:
		return BandModerate
	default:
		return BandLow
	}
}

// Result pairs a project with its similarity in [0, 1].
type Result struct {
	Project    types.Project `json:"project" yaml:"project"`
	Similarity float64       `json:"similarity" yaml:"similarity"`
	Band       Band          `json:"band" yaml:"band"`
}

// Score computes the similarity of candidate to a reference described only by
// its signature and field of science. An empty refField skips the field bonus.
// An equal field earns SameField when includeSameField is set and
// RelatedField otherwise, since equal fields also contain each other.
func Score(candidate types.Project, signature, refField string, includeSameField bool) float64 {
	return ScoreWith(DefaultWeights, candidate, signature, refField, includeSameField)
}

// ScoreWith is Score with explicit weights.
func ScoreWith(w Weights, candidate types.Project, signature, refField string, includeSameField bool) float64 {
	var sim float64

	candField := strings.ToLower(strings.TrimSpace(candidate.FieldOfScience))
	ref := strings.ToLower(strings.TrimSpace(refField))
	if ref != "" && candField != "" {
		switch {
		case candField == ref && includeSameField:
			sim += w.SameField
		case strings.Contains(candField, ref) || strings.Contains(ref, candField):
			// Equal fields land here when the exact-field bonus is off.
			sim += w.RelatedField
		}
	}

	title := strings.ToLower(candidate.Title)
	abstract := strings.ToLower(candidate.Abstract)
	var total, matched int
	for _, term := range strings.Fields(strings.ToLower(signature)) {
		if !keepTerm(term) {
			continue
		}
		total++
		switch {
		case strings.Contains(title, term):
			sim += w.TitleTerm
			matched++
		case strings.Contains(abstract, term):
			sim += w.AbstractTerm
			matched++
		}
	}
	if total > 0 {
		coverage := float64(matched) / float64(total)
		if coverage > w.CoherenceFloor {
			sim += w.Coherence * coverage
		}
	}

	names := make([]string, len(candidate.Resources))
	for i, r := range candidate.Resources {
		names[i] = r.ResourceName
	}
	sim += w.Resource * ResourceHeuristic(signature, names)

	return math.Max(0, math.Min(1, sim))
}

// Reference is what a similarity ranking compares against.
type Reference struct {
	// ProjectID is excluded from the candidates. Zero means a keyword reference.
	ProjectID int
	Signature string
	Field     string
}

// ReferenceFor builds the reference of an existing project.
func ReferenceFor(p types.Project) Reference {
	return Reference{ProjectID: p.ID, Signature: Signature(p), Field: p.FieldOfScience}
}

// KeywordReference builds a reference from free keywords and an optional
// field of science.
func KeywordReference(keywords, field string) Reference {
	return Reference{Signature: KeywordSignature(keywords), Field: strings.TrimSpace(field)}
}

// Options controls ranking.
type Options struct {
	Threshold        float64
	IncludeSameField bool
	Limit            int
}

// Rank scores candidates against ref and returns those at or above the
// threshold, most similar first. The reference project itself is removed
// before scoring. Low-band results only appear when the threshold is below 0.4.
func Rank(ref Reference, candidates []types.Project, opts Options) []Result {
	var out []Result
	for _, c := range ExcludeReference(candidates, ref.ProjectID) {
		sim := Score(c, ref.Signature, ref.Field, opts.IncludeSameField)
		if sim < opts.Threshold || sim == 0 {
			continue
		}
		out = append(out, Result{Project: c, Similarity: sim, Band: BandFor(sim)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// ExcludeReference drops every candidate whose ID equals refID.
func ExcludeReference(candidates []types.Project, refID int) []types.Project {
	if refID == 0 {
		return candidates
	}
	out := make([]types.Project, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != refID {
			out = append(out, c)
		}
	}
	return out
}
