// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"
	"unicode"
)

// stopWords are ignored as regular query terms and as similarity keywords.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "an": true, "and": true, "any": true,
	"are": true, "as": true, "at": true, "be": true, "been": true,
	"being": true, "between": true, "both": true, "but": true, "by": true,
	"can": true, "could": true, "did": true, "do": true, "does": true,
	"during": true, "each": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "how": true, "into": true, "its": true,
	"may": true, "more": true, "most": true, "new": true, "not": true,
	"of": true, "on": true, "or": true, "other": true, "our": true,
	"over": true, "such": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"under": true, "use": true, "used": true, "using": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "which": true,
	"while": true, "will": true, "with": true, "within": true, "would": true,
	"research": true, "project": true, "study": true, "work": true,
}

// IsStopWord reports whether w (any case) is a stop word.
func IsStopWord(w string) bool {
	return stopWords[strings.ToLower(w)]
}

// Tokenize lowercases s and splits it on anything that is not a letter or digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
