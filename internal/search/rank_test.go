// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"
	"time"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rankFixture() []ScoredResult {
	return []ScoredResult{
		{Score: 4, Project: types.Project{ID: 1, PI: "carol king", StartDate: day(2022, 1, 1),
			Resources: []types.ResourceAllocation{{Amount: 100}, {Amount: 50}}}},
		{Score: 9, Project: types.Project{ID: 2, PI: "Alice Smith", StartDate: day(2024, 3, 1),
			Resources: []types.ResourceAllocation{{Amount: 10}}}},
		{Score: 4, Project: types.Project{ID: 3, PI: "Bob Jones", StartDate: day(2020, 6, 1)}},
		{Score: 1, Project: types.Project{ID: 4, PI: "dave brown", StartDate: day(2023, 9, 1),
			Resources: []types.ResourceAllocation{{Amount: 1000}, {ResourceName: "no amount"}}}},
	}
}

func ids(results []ScoredResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Project.ID
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		by   SortBy
		want []int
	}{
		{SortRelevance, []int{2, 1, 3, 4}},
		{"", []int{2, 1, 3, 4}},
		{SortDateDesc, []int{2, 4, 1, 3}},
		{SortDateAsc, []int{3, 1, 4, 2}},
		{SortAllocationDesc, []int{4, 1, 2, 3}},
		{SortAllocationAsc, []int{3, 2, 1, 4}},
		{SortPIName, []int{2, 3, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.by), func(t *testing.T) {
			results := rankFixture()
			if err := Rank(results, tt.by); err != nil {
				t.Fatalf("Rank() error: %v", err)
			}
			got := ids(results)
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Rank(%s) order = %v, want %v", tt.by, got, tt.want)
				}
			}
		})
	}
}

func TestRankAllocationDescAdjacentPairs(t *testing.T) {
	results := rankFixture()
	for i := 0; i < 20; i++ {
		results = append(results, ScoredResult{Project: types.Project{
			ID:        100 + i,
			Resources: []types.ResourceAllocation{{Amount: float64((i * 37) % 11)}, {Amount: float64(i % 3)}},
		}})
	}
	if err := Rank(results, SortAllocationDesc); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(results); i++ {
		a, b := results[i-1].Project.TotalAllocation(), results[i].Project.TotalAllocation()
		if a < b {
			t.Fatalf("pair %d: %v < %v", i, a, b)
		}
	}
}

func TestRankUnknownSort(t *testing.T) {
	if err := Rank(rankFixture(), "popularity"); err == nil {
		t.Error("expected error for unknown sort key")
	}
}

func TestParseSortBy(t *testing.T) {
	if by, err := ParseSortBy(""); err != nil || by != SortRelevance {
		t.Errorf("ParseSortBy(\"\") = %q, %v", by, err)
	}
	if by, err := ParseSortBy("Allocation_Desc"); err != nil || by != SortAllocationDesc {
		t.Errorf("ParseSortBy(Allocation_Desc) = %q, %v", by, err)
	}
	if _, err := ParseSortBy("newest"); err == nil {
		t.Error("expected error for unknown key")
	}
}
