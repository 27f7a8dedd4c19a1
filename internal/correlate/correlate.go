// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package correlate reconciles allocation projects with funding awards from a
// separately maintained catalog. The catalogs share no identifier, so awards
// are found by querying every variant of the PI's name and then validated
// twice: the award PI must match the project PI, and the award institution
// must match the project institution.
package correlate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/allocations-engine/internal/variants"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

// DefaultDelay is the pause between consecutive award-service calls.
const DefaultDelay = 500 * time.Millisecond

// DefaultLimit is the per-variant award limit.
const DefaultLimit = 10

// AwardsService looks up awards by PI name. The response is loosely
// structured text; see ParseAwards.
type AwardsService interface {
	QueryAwardsByPersonName(ctx context.Context, name string, limit int) (string, error)
}

// Status summarizes a correlation.
type Status string

const (
	StatusOK          Status = "ok"
	StatusNoMatches   Status = "no_matches"
	StatusUnavailable Status = "collaborator_unavailable"
	// StatusDeadline means every variant was skipped and the caller's
	// context had ended, so the service itself was never judged.
	StatusDeadline Status = "deadline_exceeded"
)

// VariantOutcome is the result of querying one name variant: either the
// parsed awards or a skip with its reason.
type VariantOutcome struct {
	Variant string              `json:"variant"`
	Awards  []types.AwardRecord `json:"awards,omitempty"`
	Skipped bool                `json:"skipped,omitempty"`
	Reason  string              `json:"reason,omitempty"`
}

// Diagnostics count candidates through each validation stage so callers can
// tell "no funding" apart from "ambiguous matching".
type Diagnostics struct {
	VariantsQueried      int `json:"variants_queried"`
	VariantsSkipped      int `json:"variants_skipped"`
	RawCandidates        int `json:"raw_candidates"`
	NameMatched          int `json:"name_matched"`
	InstitutionValidated int `json:"institution_validated"`
}

// Correlation links a project to the awards that survived validation. It is
// emitted even when nothing survived.
type Correlation struct {
	Project         types.Project       `json:"project"`
	Awards          []types.AwardRecord `json:"awards"`
	Validated       bool                `json:"validated"`
	TemporalOverlap bool                `json:"temporal_overlap"`
	Status          Status              `json:"status"`
	Diagnostics     Diagnostics         `json:"diagnostics"`
	Outcomes        []VariantOutcome    `json:"outcomes,omitempty"`
}

// Correlator queries an AwardsService sequentially with a delay between calls.
type Correlator struct {
	service AwardsService
	delay   time.Duration
	limit   int
	logger  *slog.Logger
}

// Option configures a Correlator.
type Option func(*Correlator)

// WithDelay sets the pause between service calls. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(c *Correlator) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithLimit sets the per-variant award limit.
func WithLimit(n int) Option {
	return func(c *Correlator) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithLogger sets the logger for per-variant failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Correlator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Correlator. A nil service is allowed: every correlation then
// carries StatusUnavailable.
func New(service AwardsService, opts ...Option) *Correlator {
	c := &Correlator{
		service: service,
		delay:   DefaultDelay,
		limit:   DefaultLimit,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Available reports whether an awards service is configured.
func (c *Correlator) Available() bool { return c.service != nil }

// Correlate finds and validates the awards of p's PI. It never returns an
// error: service failures become skipped outcomes, and a missing service
// becomes StatusUnavailable. Callers bound the total time through ctx.
func (c *Correlator) Correlate(ctx context.Context, p types.Project) Correlation {
	corr := Correlation{Project: p, Awards: []types.AwardRecord{}, Status: StatusNoMatches}
	if c.service == nil {
		corr.Status = StatusUnavailable
		return corr
	}

	names := variants.PersonNames(p.PI)
	corr.Outcomes = c.queryVariants(ctx, names)

	var raw []types.AwardRecord
	index := make(map[string]int)
	for _, o := range corr.Outcomes {
		corr.Diagnostics.VariantsQueried++
		if o.Skipped {
			corr.Diagnostics.VariantsSkipped++
			continue
		}
		for _, a := range o.Awards {
			if i, ok := index[a.AwardNumber]; ok {
				raw[i] = mergeAward(raw[i], a)
				continue
			}
			index[a.AwardNumber] = len(raw)
			raw = append(raw, a)
		}
	}
	corr.Diagnostics.RawCandidates = len(raw)

	var named []types.AwardRecord
	for _, a := range raw {
		if variants.MatchPerson(a.PI, p.PI) {
			named = append(named, a)
		}
	}
	corr.Diagnostics.NameMatched = len(named)

	inst := variants.Institutions(p.Institution)
	for _, a := range named {
		if variants.MatchInstitutionVariants(inst, a.Institution) {
			corr.Awards = append(corr.Awards, a)
		}
	}
	corr.Diagnostics.InstitutionValidated = len(corr.Awards)

	corr.Validated = len(corr.Awards) > 0
	corr.TemporalOverlap = TemporalOverlap(p, corr.Awards)

	switch {
	case corr.Validated:
		corr.Status = StatusOK
	case len(corr.Outcomes) > 0 && corr.Diagnostics.VariantsSkipped == len(corr.Outcomes):
		corr.Status = StatusUnavailable
		if ctx.Err() != nil {
			corr.Status = StatusDeadline
		}
	}
	return corr
}

// mergeAward combines two copies of one award returned for different name
// variants. Empty fields of a are filled from b and the raw blocks are
// joined, so the result does not depend on variant order.
func mergeAward(a, b types.AwardRecord) types.AwardRecord {
	if a.Title == "" {
		a.Title = b.Title
	}
	if a.PI == "" {
		a.PI = b.PI
	}
	if a.Institution == "" {
		a.Institution = b.Institution
	}
	if a.Amount == 0 {
		a.Amount = b.Amount
	}
	if a.StartDate.IsZero() {
		a.StartDate = b.StartDate
	}
	if a.EndDate.IsZero() {
		a.EndDate = b.EndDate
	}
	if b.Raw != "" && b.Raw != a.Raw {
		a.Raw = strings.TrimSpace(a.Raw + "\n" + b.Raw)
	}
	return a
}

// queryVariants calls the service once per name, in order, pausing between
// calls. Once ctx ends the remaining names are recorded as skipped.
func (c *Correlator) queryVariants(ctx context.Context, names []string) []VariantOutcome {
	outcomes := make([]VariantOutcome, 0, len(names))
	for i, name := range names {
		if i > 0 {
			if err := c.wait(ctx); err != nil {
				outcomes = append(outcomes, VariantOutcome{Variant: name, Skipped: true, Reason: err.Error()})
				continue
			}
		}
		outcomes = append(outcomes, c.queryVariant(ctx, name))
	}
	return outcomes
}

func (c *Correlator) queryVariant(ctx context.Context, name string) VariantOutcome {
	if err := ctx.Err(); err != nil {
		return VariantOutcome{Variant: name, Skipped: true, Reason: err.Error()}
	}
	text, err := c.service.QueryAwardsByPersonName(ctx, name, c.limit)
	if err != nil {
		c.logger.WarnContext(ctx, "award lookup failed", "variant", name, "error", err)
		return VariantOutcome{Variant: name, Skipped: true, Reason: fmt.Sprintf("request failed: %v", err)}
	}
	if Unavailable(text) {
		c.logger.WarnContext(ctx, "award service reported unavailable", "variant", name)
		return VariantOutcome{Variant: name, Skipped: true, Reason: "service reported unavailable"}
	}
	awards := ParseAwards(text)
	c.logger.DebugContext(ctx, "award lookup", "variant", name, "candidates", len(awards))
	return VariantOutcome{Variant: name, Awards: awards}
}

func (c *Correlator) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TemporalOverlap reports whether any year mentioned in an award's text falls
// within the project's active years. It is informational and never removes
// an award. A project with neither date set never overlaps; with one date set
// that year is the whole window.
func TemporalOverlap(p types.Project, awards []types.AwardRecord) bool {
	from, to := p.StartDate.Year(), p.EndDate.Year()
	switch {
	case p.StartDate.IsZero() && p.EndDate.IsZero():
		return false
	case p.StartDate.IsZero():
		from = to
	case p.EndDate.IsZero():
		to = from
	}
	for _, a := range awards {
		for _, y := range Years(a.Raw) {
			if y >= from && y <= to {
				return true
			}
		}
	}
	return false
}
