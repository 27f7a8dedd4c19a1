// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search parses boolean free-text queries and ranks allocations
// projects against them with field-weighted scoring.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

// Request holds the search parameters.
type Request struct {
	Query   string
	Filters Filters
	SortBy  SortBy
	Limit   int
}

// Output holds the ranked results and the metadata callers need to tell
// "nothing matched" apart from "the search degraded".
type Output struct {
	Query       ParsedQuery    `json:"query" yaml:"query"`
	Results     []ScoredResult `json:"results" yaml:"results"`
	Considered  int            `json:"considered" yaml:"considered"`
	Matched     int            `json:"matched" yaml:"matched"`
	PagesLoaded int            `json:"pages_loaded" yaml:"pages_loaded"`
	FailedPages []int          `json:"failed_pages,omitempty" yaml:"failed_pages,omitempty"`
	Degraded    bool           `json:"degraded" yaml:"degraded"`
}

// Run scores projects against q, drops exclusions, ranks, and truncates to
// limit (0 means no limit). It returns the page of results and the number of
// projects that matched before truncation.
func Run(projects []types.Project, q ParsedQuery, f Filters, by SortBy, limit int) ([]ScoredResult, int, error) {
	results := ScoreAll(projects, q, f)
	if err := Rank(results, by); err != nil {
		return nil, 0, err
	}
	matched := len(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, matched, nil
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Results) == 0 {
		fmt.Fprintf(w, "No results found (%d projects considered).\n", out.Considered)
		writeDegraded(out, w)
		return
	}

	fmt.Fprintf(w, "%-4s  %-8s  %-50s  %-20s  %-10s  %-5s  %s\n",
		"Rank", "ID", "Title", "PI", "Start", "Score", "Allocation")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range out.Results {
		start := ""
		if !r.Project.StartDate.IsZero() {
			start = r.Project.StartDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-4d  %-8d  %s  %s  %-10s  %-5.1f  %s\n",
			i+1, r.Project.ID, Column(r.Project.Title, 50), Column(r.Project.PI, 20),
			start, r.Score, FormatAmount(r.Project.TotalAllocation()))
	}

	fmt.Fprintf(w, "\n%d of %d matches shown (%d projects considered)\n",
		len(out.Results), out.Matched, out.Considered)
	writeDegraded(out, w)
}

func writeDegraded(out Output, w io.Writer) {
	if out.Degraded {
		fmt.Fprintf(w, "warning: results are partial, pages %v could not be loaded\n", out.FailedPages)
	}
}

// FormatJSON writes the output as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatAmount renders a computational allocation quantity with thousands
// separators. Fractions are dropped and no currency symbol is ever added.
func FormatAmount(amount float64) string {
	return humanize.Comma(int64(amount))
}

// truncate shortens s to max display columns, so wide runes in names keep
// the table aligned.
func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "...")
}

// Column fits s into exactly width display cells, truncating with "..." and
// padding with spaces. Table writers use it so CJK and accented names align.
func Column(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}
