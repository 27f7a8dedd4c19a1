// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package variants generates alternate renderings of person and institution
// names so that two independently formatted catalogs can be matched without
// a shared identifier. Recall is bounded by a static table of well-known
// institutions; names outside it rely on the structural rules alone.
package variants

import (
	"strings"
	"unicode"
)

// PersonName is a name split into its parts.
type PersonName struct {
	First   string
	Middles []string
	Last    string
}

// generational suffixes are dropped before a name is split. "V" is left out
// because it is as likely to be a trailing middle initial.
var generational = map[string]bool{"jr": true, "sr": true, "ii": true, "iii": true, "iv": true}

func isSuffix(tok string) bool {
	return generational[strings.ToLower(strings.Trim(tok, ".,"))]
}

// stripSuffixes removes generational suffixes, whether written after the
// last name ("Jones III", "Smith Jr.") or as their own comma segment
// ("John Smith, Jr.").
func stripSuffixes(name string) string {
	var segs []string
	for _, seg := range strings.Split(name, ",") {
		toks := strings.Fields(seg)
		for len(toks) > 1 && isSuffix(toks[len(toks)-1]) {
			toks = toks[:len(toks)-1]
		}
		if len(toks) == 0 || (len(toks) == 1 && isSuffix(toks[0])) {
			continue
		}
		segs = append(segs, strings.Join(toks, " "))
	}
	return strings.Join(segs, ", ")
}

// ParsePerson splits "First [Middle...] Last" or "Last, First [Middle...]"
// into parts. Periods are dropped from initials and generational suffixes
// (Jr., Sr., II-IV) are ignored. A single token is treated as a last name.
func ParsePerson(name string) PersonName {
	name = stripSuffixes(strings.Join(strings.Fields(name), " "))
	if name == "" {
		return PersonName{}
	}

	if idx := strings.Index(name, ","); idx >= 0 {
		last := strings.TrimSpace(name[:idx])
		rest := strings.TrimSpace(name[idx+1:])
		if rest != "" {
			name = rest + " " + last
		} else {
			name = last
		}
	}

	var parts []string
	for _, f := range strings.Fields(name) {
		f = strings.Trim(f, ".,")
		if f != "" {
			parts = append(parts, f)
		}
	}

	switch len(parts) {
	case 0:
		return PersonName{}
	case 1:
		return PersonName{Last: parts[0]}
	default:
		return PersonName{
			First:   parts[0],
			Middles: parts[1 : len(parts)-1],
			Last:    parts[len(parts)-1],
		}
	}
}

// PersonNames returns the variants of a person name: the cleaned original,
// "Last, First", "First Last", "Last, F." and "F. Last", plus four forms with
// the middle initial when a middle name exists. The list is de-duplicated and
// its order is stable.
func PersonNames(name string) []string {
	clean := strings.Join(strings.Fields(name), " ")
	if clean == "" {
		return nil
	}
	pn := ParsePerson(clean)
	if pn.First == "" {
		return []string{clean}
	}

	fi := initial(pn.First)
	out := newOrderedSet()
	out.add(clean)
	out.add(pn.Last + ", " + pn.First)
	out.add(pn.First + " " + pn.Last)
	out.add(pn.Last + ", " + fi)
	out.add(fi + " " + pn.Last)

	if len(pn.Middles) > 0 {
		mi := make([]string, len(pn.Middles))
		for i, m := range pn.Middles {
			mi[i] = initial(m)
		}
		middle := strings.Join(mi, " ")
		out.add(pn.First + " " + middle + " " + pn.Last)
		out.add(pn.Last + ", " + pn.First + " " + middle)
		out.add(fi + " " + middle + " " + pn.Last)
		out.add(pn.Last + ", " + fi + " " + middle)
	}
	return out.items
}

// MatchPerson reports whether candidate plausibly names the same person as
// original: the same last name and a first name that is equal or an initial
// of the other. Middle names are ignored. Both names may be in either
// "First Last" or "Last, First" order.
func MatchPerson(candidate, original string) bool {
	a, b := ParsePerson(candidate), ParsePerson(original)
	if a.Last == "" || b.Last == "" {
		return false
	}
	if foldKey(a.Last) != foldKey(b.Last) {
		return false
	}
	fa, fb := foldKey(a.First), foldKey(b.First)
	if fa == "" || fb == "" {
		return false
	}
	if fa == fb {
		return true
	}
	if len([]rune(fa)) == 1 || len([]rune(fb)) == 1 {
		return []rune(fa)[0] == []rune(fb)[0]
	}
	return false
}

func initial(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r)) + "."
	}
	return ""
}

// foldKey lowercases s, strips diacritics and keeps only letters and digits.
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(stripDiacritics(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// orderedSet keeps insertion order and drops case-insensitive duplicates.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	v = strings.Join(strings.Fields(v), " ")
	if v == "" {
		return
	}
	key := strings.ToLower(v)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, v)
}
