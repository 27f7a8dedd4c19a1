// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"sort"
	"strings"
)

// SortBy selects the ordering applied by Rank.
type SortBy string

const (
	SortRelevance      SortBy = "relevance"
	SortDateDesc       SortBy = "date_desc"
	SortDateAsc        SortBy = "date_asc"
	SortAllocationDesc SortBy = "allocation_desc"
	SortAllocationAsc  SortBy = "allocation_asc"
	SortPIName         SortBy = "pi_name"
)

// SortKeys lists the accepted sort keys in display order.
var SortKeys = []SortBy{
	SortRelevance, SortDateDesc, SortDateAsc,
	SortAllocationDesc, SortAllocationAsc, SortPIName,
}

// ParseSortBy validates s. The empty string selects relevance.
func ParseSortBy(s string) (SortBy, error) {
	if s == "" {
		return SortRelevance, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// Rank stable-sorts results in place by the chosen key. Ties keep their input order.
func Rank(results []ScoredResult, by SortBy) error {
	var less func(a, b ScoredResult) bool
	switch by {
	case SortRelevance, "":
		less = func(a, b ScoredResult) bool { return a.Score > b.Score }
	case SortDateDesc:
		less = func(a, b ScoredResult) bool { return a.Project.StartDate.After(b.Project.StartDate) }
	case SortDateAsc:
		less = func(a, b ScoredResult) bool { return a.Project.StartDate.Before(b.Project.StartDate) }
	case SortAllocationDesc:
		less = func(a, b ScoredResult) bool { return a.Project.TotalAllocation() > b.Project.TotalAllocation() }
	case SortAllocationAsc:
		less = func(a, b ScoredResult) bool { return a.Project.TotalAllocation() < b.Project.TotalAllocation() }
	case SortPIName:
		less = func(a, b ScoredResult) bool {
			return strings.ToLower(a.Project.PI) < strings.ToLower(b.Project.PI)
		}
	default:
		return fmt.Errorf("unknown sort %q", by)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i], results[j])
	})
	return nil
}
