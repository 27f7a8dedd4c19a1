// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package correlate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAwards(t *testing.T) {
	got := ParseAwards(janeAwards)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, "2138259", first.AwardNumber)
	assert.Equal(t, "Scalable Ocean Models", first.Title)
	assert.Equal(t, "Jane Doe", first.PI)
	assert.Equal(t, "Massachusetts Institute of Technology", first.Institution)
	assert.Equal(t, 1200000.0, first.Amount)
	assert.Equal(t, time.Date(2021, 9, 1, 0, 0, 0, 0, time.UTC), first.StartDate)
	assert.Equal(t, time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), first.EndDate)
	assert.Contains(t, first.Raw, "Period: 2021-09-01")
	assert.NotContains(t, first.Raw, "1900001", "raw text stops at the next award")

	assert.Equal(t, "1900002", got[2].AwardNumber)
	assert.Equal(t, "Stanford University", got[2].Institution)
}

func TestParseAwardsFormats(t *testing.T) {
	text := `Results

Award Number: 2045678
Title: Exascale Lattice QCD
- **Principal Investigator:** Ana Lopez
- **Organization:** University of Colorado Boulder
- Award Amount: 875,000.50 USD
- Start Date: 07/01/2020
- End Date: 06/30/2023

Award #2045678 - duplicate listing
PI: Someone Else
`
	got := ParseAwards(text)
	require.Len(t, got, 1, "duplicates by award number collapse to the first")

	a := got[0]
	assert.Equal(t, "2045678", a.AwardNumber)
	assert.Equal(t, "Exascale Lattice QCD", a.Title)
	assert.Equal(t, "Ana Lopez", a.PI)
	assert.Equal(t, "University of Colorado Boulder", a.Institution)
	assert.Equal(t, 875000.50, a.Amount)
	assert.Equal(t, 2020, a.StartDate.Year())
	assert.Equal(t, 2023, a.EndDate.Year())
}

func TestParseAwardsNothing(t *testing.T) {
	assert.Empty(t, ParseAwards(""))
	assert.Empty(t, ParseAwards("No awards found."))
	assert.Empty(t, ParseAwards("PI: Jane Doe\nInstitution: MIT"), "fields without an award line are ignored")
}

func TestUnavailable(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Service unavailable", true},
		{"\n\n  ERROR: upstream timeout\n", true},
		{"error: bad request", true},
		{"No awards found.", false},
		{"Found 1 award\n**Award 1234567** - Error Correcting Codes", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Unavailable(tt.text))
		})
	}
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2021, 2024}, Years("Period: 2021-09-01 to 2024-08-31, award 2138259, $1,200,000"))
	assert.Empty(t, Years("no dates here 123 18999"))
}
