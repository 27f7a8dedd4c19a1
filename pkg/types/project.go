// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the allocations engine.
// Projects come from the allocations catalog; AwardRecords come from the
// separately maintained funding-awards catalog. The two share no identifier.
package types

import (
	"strings"
	"time"
)

// ResourceAllocation is one computational resource granted to a project.
// Amount is a quantity of Units (SUs, GPU hours, TB) and is never currency.
type ResourceAllocation struct {
	ResourceName string  `json:"resource_name" yaml:"resource_name"`
	Units        string  `json:"units,omitempty" yaml:"units,omitempty"`
	Amount       float64 `json:"amount" yaml:"amount"`
}

// Project is a single allocations-catalog record. Projects are immutable once
// fetched; identity is ID.
type Project struct {
	ID             int                  `json:"id" yaml:"id"`
	Title          string               `json:"title" yaml:"title"`
	PI             string               `json:"pi" yaml:"pi"`
	Institution    string               `json:"institution" yaml:"institution"`
	FieldOfScience string               `json:"field_of_science" yaml:"field_of_science"`
	AllocationType string               `json:"allocation_type" yaml:"allocation_type"`
	Abstract       string               `json:"abstract" yaml:"abstract"`
	StartDate      time.Time            `json:"start_date" yaml:"start_date"`
	EndDate        time.Time            `json:"end_date" yaml:"end_date"`
	Resources      []ResourceAllocation `json:"resources" yaml:"resources"`
}

// TotalAllocation sums the amounts of all resources. Missing amounts count as 0.
func (p Project) TotalAllocation() float64 {
	var total float64
	for _, r := range p.Resources {
		total += r.Amount
	}
	return total
}

// ResourceNames returns the resource names joined by spaces.
func (p Project) ResourceNames() string {
	names := make([]string, 0, len(p.Resources))
	for _, r := range p.Resources {
		names = append(names, r.ResourceName)
	}
	return strings.Join(names, " ")
}

// ProjectPage is one page of the upstream allocations catalog.
type ProjectPage struct {
	Projects   []Project `json:"projects" yaml:"projects"`
	TotalPages int       `json:"total_pages" yaml:"total_pages"`
}

// AwardRecord is a funding award parsed from the awards collaborator's
// textual response. It is read-only input to the correlator.
type AwardRecord struct {
	AwardNumber string    `json:"award_number" yaml:"award_number"`
	Title       string    `json:"title" yaml:"title"`
	PI          string    `json:"pi" yaml:"pi"`
	Institution string    `json:"institution" yaml:"institution"`
	Amount      float64   `json:"amount" yaml:"amount"`
	StartDate   time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate     time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`

	// Raw is the text block the record was parsed from. Temporal validation
	// scans it for years.
	Raw string `json:"-" yaml:"-"`
}
