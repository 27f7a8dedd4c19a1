// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package correlate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/allocations-engine/pkg/types"
)

var (
	awardHeader = regexp.MustCompile(`(?i)^\s*\**\s*award(?:\s+(?:number|no\.?|#))?\s*[:#]?\s*(\d{5,})\s*\**\s*(?:[-–:]\s*(.*))?$`)
	awardField  = regexp.MustCompile(`(?i)^\s*[-*]?\s*\**\s*(pi|principal investigator|institution|organization|awardee|amount|award amount|period|start date|end date|title)\s*\**\s*:\s*\**\s*(.+?)\s*$`)
	awardPeriod = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})\s*(?:to|through|-|–)\s*(\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{4})`)
	amountRun   = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	yearRun     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// Unavailable reports whether a service response is a sentinel rather than
// data: its first non-empty line mentions "unavailable" or "error". Only the
// first line is checked so that an award titled "Error Correcting Codes"
// does not discard the whole response.
func Unavailable(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		return strings.Contains(line, "unavailable") || strings.Contains(line, "error")
	}
	return false
}

// ParseAwards extracts award records from a service response. A record
// starts at an award-number line ("**Award 2138259** - Title") and collects
// "Key: value" lines until the next one. Text before the first award line is
// ignored. Records are de-duplicated by award number, first occurrence wins.
func ParseAwards(text string) []types.AwardRecord {
	var (
		out   []types.AwardRecord
		seen  = make(map[string]bool)
		cur   *types.AwardRecord
		block []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Raw = strings.TrimSpace(strings.Join(block, "\n"))
		if !seen[cur.AwardNumber] {
			seen[cur.AwardNumber] = true
			out = append(out, *cur)
		}
		cur, block = nil, nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := awardHeader.FindStringSubmatch(line); m != nil {
			flush()
			cur = &types.AwardRecord{AwardNumber: m[1], Title: cleanValue(m[2])}
			block = []string{line}
			continue
		}
		if cur == nil {
			continue
		}
		block = append(block, line)
		if m := awardField.FindStringSubmatch(line); m != nil {
			applyField(cur, strings.ToLower(m[1]), cleanValue(m[2]))
		}
	}
	flush()
	return out
}

func applyField(a *types.AwardRecord, key, value string) {
	switch key {
	case "pi", "principal investigator":
		a.PI = value
	case "institution", "organization", "awardee":
		a.Institution = value
	case "amount", "award amount":
		a.Amount = parseAmount(value)
	case "title":
		a.Title = value
	case "start date":
		a.StartDate = parseAwardDate(value)
	case "end date":
		a.EndDate = parseAwardDate(value)
	case "period":
		if m := awardPeriod.FindStringSubmatch(value); m != nil {
			a.StartDate = parseAwardDate(m[1])
			a.EndDate = parseAwardDate(m[2])
		}
	}
}

func cleanValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*"))
}

func parseAmount(s string) float64 {
	m := amountRun.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseAwardDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Years returns every 4-digit year from 1900 to 2099 found in text, in order
// of appearance.
func Years(text string) []int {
	var out []int
	for _, m := range yearRun.FindAllString(text, -1) {
		y, err := strconv.Atoi(m)
		if err == nil {
			out = append(out, y)
		}
	}
	return out
}
