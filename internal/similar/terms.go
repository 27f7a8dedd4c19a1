// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similar recommends projects that resemble a reference project.
// A reference is reduced to a short weighted keyword signature; candidates
// are scored against that signature, the reference field of science, and
// the resource types their allocations use.
package similar

import (
	"sort"
	"strings"

	"github.com/pdiddy/allocations-engine/internal/search"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

const (
	titleWeight    = 3
	fieldWeight    = 2
	abstractWeight = 1

	abstractWordLimit = 50
	signatureSize     = 10
)

// WeightedTerm is a keyword and its accumulated weight.
type WeightedTerm struct {
	Term   string
	Weight int
}

// ExtractTerms returns the top signature terms of p, heaviest first. Ties
// are broken alphabetically so the signature is stable.
func ExtractTerms(p types.Project) []WeightedTerm {
	weights := make(map[string]int)
	add := func(text string, w int) {
		for _, tok := range search.Tokenize(text) {
			if keepTerm(tok) {
				weights[tok] += w
			}
		}
	}

	add(p.Title, titleWeight)
	add(p.FieldOfScience, fieldWeight)
	add(firstWords(p.Abstract, abstractWordLimit), abstractWeight)

	terms := make([]WeightedTerm, 0, len(weights))
	for t, w := range weights {
		terms = append(terms, WeightedTerm{Term: t, Weight: w})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > signatureSize {
		terms = terms[:signatureSize]
	}
	return terms
}

// Signature joins the top terms of p into a space-separated keyword string.
func Signature(p types.Project) string {
	terms := ExtractTerms(p)
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Term
	}
	return strings.Join(words, " ")
}

func keepTerm(tok string) bool {
	return len(tok) > 3 && !search.IsStopWord(tok)
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// KeywordSignature reduces free keywords to a signature: tokens that would
// survive extraction, first occurrence order, at most ten.
func KeywordSignature(keywords string) string {
	seen := make(map[string]bool)
	var words []string
	for _, tok := range search.Tokenize(keywords) {
		if !keepTerm(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		words = append(words, tok)
		if len(words) == signatureSize {
			break
		}
	}
	return strings.Join(words, " ")
}
