// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"regexp"
	"strings"
)

// ParsedQuery is the classified form of a free-text query. It lives for the
// duration of one search call.
type ParsedQuery struct {
	ExactPhrases []string `json:"exact_phrases,omitempty" yaml:"exact_phrases,omitempty"`
	AndTerms     []string `json:"and_terms,omitempty" yaml:"and_terms,omitempty"`
	OrTerms      []string `json:"or_terms,omitempty" yaml:"or_terms,omitempty"`
	NotTerms     []string `json:"not_terms,omitempty" yaml:"not_terms,omitempty"`
	RegularTerms []string `json:"regular_terms,omitempty" yaml:"regular_terms,omitempty"`
}

// IsEmpty reports whether the query holds no terms at all.
func (q ParsedQuery) IsEmpty() bool {
	return len(q.ExactPhrases) == 0 && len(q.AndTerms) == 0 && len(q.OrTerms) == 0 &&
		len(q.NotTerms) == 0 && len(q.RegularTerms) == 0
}

var quotedPhrase = regexp.MustCompile(`"([^"]*)"`)

// ParseQuery splits raw into exact phrases and operator-tagged terms.
//
// Double-quoted substrings become exact phrases and are removed first. The
// rest is split on whitespace: AND, OR and NOT (any case) take the next token
// into their set, even when that token is itself an operator word; everything
// else is a regular term. There is no nesting. An operator with nothing after
// it is dropped.
func ParseQuery(raw string) ParsedQuery {
	var q ParsedQuery

	for _, m := range quotedPhrase.FindAllStringSubmatch(raw, -1) {
		phrase := strings.Join(strings.Fields(m[1]), " ")
		if phrase != "" {
			q.ExactPhrases = append(q.ExactPhrases, phrase)
		}
	}
	rest := quotedPhrase.ReplaceAllString(raw, " ")

	tokens := strings.Fields(rest)
	for i := 0; i < len(tokens); i++ {
		op := operator(tokens[i])
		if op == "" {
			q.RegularTerms = append(q.RegularTerms, tokens[i])
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		i++
		switch op {
		case "AND":
			q.AndTerms = append(q.AndTerms, tokens[i])
		case "OR":
			q.OrTerms = append(q.OrTerms, tokens[i])
		case "NOT":
			q.NotTerms = append(q.NotTerms, tokens[i])
		}
	}
	return q
}

func operator(tok string) string {
	switch up := strings.ToUpper(tok); up {
	case "AND", "OR", "NOT":
		return up
	}
	return ""
}
