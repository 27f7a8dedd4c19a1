// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a search and its results. A
// saved search can be reviewed later without refetching the catalog.
type QueryFile struct {
	Query   QueryParams    `yaml:"query"`
	Parsed  ParsedQuery    `yaml:"parsed"`
	Results []ScoredResult `yaml:"results"`
	Summary QuerySummary   `yaml:"summary"`
}

// QueryParams stores the request in a serializable form.
type QueryParams struct {
	Text           string `yaml:"text"`
	FieldOfScience string `yaml:"field_of_science,omitempty"`
	AllocationType string `yaml:"allocation_type,omitempty"`
	StartFrom      string `yaml:"start_from,omitempty"`
	StartTo        string `yaml:"start_to,omitempty"`
	SortBy         string `yaml:"sort_by"`
	Limit          int    `yaml:"limit"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Considered  int       `yaml:"considered"`
	Matched     int       `yaml:"matched"`
	Returned    int       `yaml:"returned"`
	FailedPages []int     `yaml:"failed_pages,omitempty"`
	Timestamp   time.Time `yaml:"timestamp"`
}

const dateFmt = "2006-01-02"

// WriteQueryFile saves a request and its output to a YAML file.
func WriteQueryFile(path string, req Request, out Output) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:           req.Query,
			FieldOfScience: req.Filters.FieldOfScience,
			AllocationType: req.Filters.AllocationType,
			SortBy:         string(req.SortBy),
			Limit:          req.Limit,
		},
		Parsed:  out.Query,
		Results: out.Results,
		Summary: QuerySummary{
			Considered:  out.Considered,
			Matched:     out.Matched,
			Returned:    len(out.Results),
			FailedPages: out.FailedPages,
			Timestamp:   time.Now(),
		},
	}
	if !req.Filters.StartFrom.IsZero() {
		qf.Query.StartFrom = req.Filters.StartFrom.Format(dateFmt)
	}
	if !req.Filters.StartTo.IsZero() {
		qf.Query.StartTo = req.Filters.StartTo.Format(dateFmt)
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToRequest converts stored QueryParams back into a Request.
func (p QueryParams) ToRequest() (Request, error) {
	by, err := ParseSortBy(p.SortBy)
	if err != nil {
		return Request{}, err
	}
	req := Request{
		Query: p.Text,
		Filters: Filters{
			FieldOfScience: p.FieldOfScience,
			AllocationType: p.AllocationType,
		},
		SortBy: by,
		Limit:  p.Limit,
	}
	if p.StartFrom != "" {
		t, err := time.Parse(dateFmt, p.StartFrom)
		if err != nil {
			return req, fmt.Errorf("invalid start_from %q: %w", p.StartFrom, err)
		}
		req.Filters.StartFrom = t
	}
	if p.StartTo != "" {
		t, err := time.Parse(dateFmt, p.StartTo)
		if err != nil {
			return req, fmt.Errorf("invalid start_to %q: %w", p.StartTo, err)
		}
		req.Filters.StartTo = t
	}
	return req, nil
}
