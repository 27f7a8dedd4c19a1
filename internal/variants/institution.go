// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package variants

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	dashRunes      = strings.NewReplacer("–", "-", "—", "-", "‐", "-")
	spacedHyphen   = regexp.MustCompile(`\s*-\s*`)
	spaceBeforeSep = regexp.MustCompile(`\s+([,;])`)
	commaNoSpace   = regexp.MustCompile(`,(\S)`)

	universityOf     = regexp.MustCompile(`(?i)^university of (.+)$`)
	trailingUniv     = regexp.MustCompile(`(?i)^(.+) university$`)
	atSeparator      = regexp.MustCompile(`(?i)^(.+?) at (.+)$`)
	commaSeparator   = regexp.MustCompile(`^([^,]+), (.+)$`)
	hyphenSeparator  = regexp.MustCompile(`^(.*\b(?i:university|college|institute)\b.*?)-(\p{L}.*)$`)
	campusExpression = regexp.MustCompile(`(?i)^university of ([^,]+?)(?: at |, |-)(.+)$`)
	andWord          = regexp.MustCompile(`(?i)\band\b`)
)

// NormalizeInstitution tidies punctuation and spacing: unicode dashes become
// hyphens, hyphens lose surrounding spaces, commas get exactly one following
// space, a leading "The" and trailing punctuation are dropped.
func NormalizeInstitution(name string) string {
	s := dashRunes.Replace(name)
	s = strings.Join(strings.Fields(s), " ")
	s = spacedHyphen.ReplaceAllString(s, "-")
	s = spaceBeforeSep.ReplaceAllString(s, "$1")
	s = commaNoSpace.ReplaceAllString(s, ", $1")
	s = strings.Trim(s, " .,;:-")
	if len(s) > 4 && strings.EqualFold(s[:4], "the ") {
		s = s[4:]
	}
	return s
}

// Institutions returns the variants of an institution name. Four mechanisms
// run on the normalized name and their outputs are unioned: structural
// pattern swaps, campus expansions of "University of X at Y", the known
// abbreviation table, and and/& interchange. The normalized name comes first.
func Institutions(name string) []string {
	norm := NormalizeInstitution(name)
	if norm == "" {
		return nil
	}

	out := newOrderedSet()
	out.add(norm)
	for _, v := range patternSwaps(norm) {
		out.add(v)
	}
	for _, v := range campusExpansions(norm) {
		out.add(v)
	}
	for _, v := range knownNames(norm) {
		out.add(v)
	}
	for _, v := range ampersandSwaps(norm) {
		out.add(v)
	}
	return out.items
}

// patternSwaps reorders "University of X" and "X University" and rewrites
// the "X at Y", "X, Y" and "X-Y" separators into each other.
func patternSwaps(s string) []string {
	var out []string

	if m := universityOf.FindStringSubmatch(s); m != nil && !hasSeparator(m[1]) {
		out = append(out, m[1]+" University")
	}
	if m := trailingUniv.FindStringSubmatch(s); m != nil && !hasSeparator(m[1]) &&
		!strings.HasSuffix(strings.ToLower(m[1]), " state") {
		out = append(out, "University of "+m[1])
	}

	var x, y string
	if m := atSeparator.FindStringSubmatch(s); m != nil {
		x, y = m[1], m[2]
	} else if m := commaSeparator.FindStringSubmatch(s); m != nil {
		x, y = m[1], m[2]
	} else if m := hyphenSeparator.FindStringSubmatch(s); m != nil {
		x, y = m[1], m[2]
	}
	if x != "" && y != "" {
		out = append(out, x+" at "+y, x+", "+y, x+"-"+y, x+" "+y)
	}
	return out
}

// campusExpansions handles "University of X at Y", "University of X, Y" and
// "University of X-Y": every separator form plus the "UX Y" short form used
// for single-word systems (UC Berkeley, UT Austin). The bare system name is
// never produced, since it would match every campus.
func campusExpansions(s string) []string {
	m := campusExpression.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	system, campus := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	base := "University of " + system
	out := []string{
		base + " at " + campus,
		base + ", " + campus,
		base + "-" + campus,
		base + " " + campus,
	}
	if !strings.Contains(system, " ") {
		out = append(out, "U"+initialLetter(system)+" "+campus)
	}
	return out
}

// knownNames returns every name of each table entry that overlaps s. Overlap
// is token-bounded containment in either direction; a name may contain s only
// when s has at least two tokens, so that a short input cannot pull in an
// entry by a shared generic word.
func knownNames(s string) []string {
	key := institutionKey(s)
	var out []string
	for _, k := range knownInstitutions {
		names := append([]string{k.Canonical}, k.Aliases...)
		for _, n := range names {
			nk := institutionKey(n)
			if nk == key || containsTokens(key, nk) ||
				(tokenCount(key) >= 2 && containsTokens(nk, key)) {
				out = append(out, names...)
				break
			}
		}
	}
	return out
}

// ampersandSwaps interchanges "and" and "&".
func ampersandSwaps(s string) []string {
	var out []string
	if strings.Contains(s, "&") {
		out = append(out, strings.Join(strings.Fields(strings.ReplaceAll(s, "&", " and ")), " "))
	}
	if andWord.MatchString(s) {
		out = append(out, andWord.ReplaceAllString(s, "&"))
	}
	return out
}

// MatchInstitution reports whether a and b plausibly name the same
// institution: their variant sets share a normalized key, or one normalized
// name contains the other as a run of at least two tokens ("Purdue
// University" and "Purdue University Main Campus"). Containment is checked on
// the names as given, not on generated variants, because swaps such as
// "University of New York" would otherwise match unrelated campuses.
func MatchInstitution(a, b string) bool {
	return MatchInstitutionVariants(Institutions(a), b)
}

// MatchInstitutionVariants is MatchInstitution with the variants of the first
// name already computed. variants[0] must be the normalized name, as returned
// by Institutions.
func MatchInstitutionVariants(variants []string, b string) bool {
	if len(variants) == 0 {
		return false
	}
	vb := Institutions(b)
	if len(vb) == 0 {
		return false
	}

	kb := institutionKeys(vb)
	for k := range institutionKeys(variants) {
		if kb[k] {
			return true
		}
	}

	x, y := institutionKey(variants[0]), institutionKey(vb[0])
	return (tokenCount(y) >= 2 && containsTokens(x, y)) ||
		(tokenCount(x) >= 2 && containsTokens(y, x))
}

func institutionKeys(names []string) map[string]bool {
	keys := make(map[string]bool, len(names))
	for _, n := range names {
		if k := institutionKey(n); k != "" {
			keys[k] = true
		}
	}
	return keys
}

// institutionKey lowercases s, strips diacritics, spells "&" as "and", turns every other
// non-alphanumeric rune into a space and drops a leading "the".
func institutionKey(s string) string {
	s = strings.ReplaceAll(strings.ToLower(stripDiacritics(s)), "&", " and ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	fields := strings.Fields(s)
	if len(fields) > 1 && fields[0] == "the" {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// containsTokens reports whether needle occurs in haystack on token boundaries.
func containsTokens(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

func tokenCount(s string) int {
	return len(strings.Fields(s))
}

func hasSeparator(s string) bool {
	return strings.ContainsAny(s, ",-") || strings.Contains(strings.ToLower(s), " at ")
}

func initialLetter(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r))
	}
	return ""
}
