// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ParsedQuery
	}{
		{
			name: "phrase, and, not",
			raw:  `"a b" AND c NOT d`,
			want: ParsedQuery{ExactPhrases: []string{"a b"}, AndTerms: []string{"c"}, NotTerms: []string{"d"}},
		},
		{
			name: "regular terms only",
			raw:  "climate  modeling",
			want: ParsedQuery{RegularTerms: []string{"climate", "modeling"}},
		},
		{
			name: "operators are case-insensitive",
			raw:  "gpu or cpu and storage not tape",
			want: ParsedQuery{
				RegularTerms: []string{"gpu"},
				OrTerms:      []string{"cpu"},
				AndTerms:     []string{"storage"},
				NotTerms:     []string{"tape"},
			},
		},
		{
			name: "dangling operator is dropped",
			raw:  "genomics AND",
			want: ParsedQuery{RegularTerms: []string{"genomics"}},
		},
		{
			name: "operator consumes the next token even if it is an operator",
			raw:  "cells AND NOT biology",
			want: ParsedQuery{
				RegularTerms: []string{"cells", "biology"},
				AndTerms:     []string{"NOT"},
			},
		},
		{
			name: "multiple phrases with extra whitespace",
			raw:  `"machine   learning" turbulence "deep learning"`,
			want: ParsedQuery{
				ExactPhrases: []string{"machine learning", "deep learning"},
				RegularTerms: []string{"turbulence"},
			},
		},
		{
			name: "empty quotes ignored",
			raw:  `"" physics`,
			want: ParsedQuery{RegularTerms: []string{"physics"}},
		},
		{
			name: "whitespace only",
			raw:  "   \t ",
			want: ParsedQuery{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQuery(%q) =\n  %+v\nwant\n  %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsedQueryIsEmpty(t *testing.T) {
	if !ParseQuery("").IsEmpty() {
		t.Error("empty query should be empty")
	}
	if !ParseQuery("  ").IsEmpty() {
		t.Error("whitespace query should be empty")
	}
	if ParseQuery("NOT x").IsEmpty() {
		t.Error("NOT-only query should not be empty")
	}
}
