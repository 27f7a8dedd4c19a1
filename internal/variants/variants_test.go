// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package variants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNoFoldDuplicates(t *testing.T, list []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, v := range list {
		k := strings.ToLower(v)
		assert.False(t, seen[k], "duplicate variant %q", v)
		seen[k] = true
	}
}

func TestParsePerson(t *testing.T) {
	tests := []struct {
		in   string
		want PersonName
	}{
		{"Jane A. Doe", PersonName{First: "Jane", Middles: []string{"A"}, Last: "Doe"}},
		{"Doe, Jane", PersonName{First: "Jane", Middles: []string{}, Last: "Doe"}},
		{"  Jane   Doe ", PersonName{First: "Jane", Middles: []string{}, Last: "Doe"}},
		{"Cher", PersonName{Last: "Cher"}},
		{"", PersonName{}},
		{"Robert L. Jones III", PersonName{First: "Robert", Middles: []string{"L"}, Last: "Jones"}},
		{"John Smith Jr.", PersonName{First: "John", Middles: []string{}, Last: "Smith"}},
		{"John Smith, Jr.", PersonName{First: "John", Middles: []string{}, Last: "Smith"}},
		{"Jones III, Robert", PersonName{First: "Robert", Middles: []string{}, Last: "Jones"}},
		{"Smith, Jr., John", PersonName{First: "John", Middles: []string{}, Last: "Smith"}},
		{"John V", PersonName{First: "John", Middles: []string{}, Last: "V"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePerson(tt.in)
			assert.Equal(t, tt.want.First, got.First)
			assert.Equal(t, tt.want.Last, got.Last)
			assert.Equal(t, len(tt.want.Middles), len(got.Middles))
		})
	}
}

func TestPersonNames(t *testing.T) {
	got := PersonNames("Jane A. Doe")
	assert.Equal(t, "Jane A. Doe", got[0], "original comes first")
	for _, want := range []string{
		"Doe, Jane", "Jane Doe", "Doe, J.", "J. Doe",
		"Doe, Jane A.", "J. A. Doe", "Doe, J. A.",
	} {
		assert.Contains(t, got, want)
	}
	assert.Len(t, got, 8)
	assertNoFoldDuplicates(t, got)
}

func TestPersonNamesWithSuffix(t *testing.T) {
	got := PersonNames("Robert L. Jones III")
	assert.Equal(t, "Robert L. Jones III", got[0], "original comes first")
	assert.Contains(t, got, "Jones, Robert")
	assert.Contains(t, got, "R. L. Jones")
	for _, v := range got[1:] {
		assert.NotContains(t, v, "III", "suffix must not leak into %q", v)
	}
	assert.Len(t, got, 9, "the original plus eight generated forms")
}

func TestPersonNamesLastFirstInput(t *testing.T) {
	got := PersonNames("Doe, Jane")
	assert.Equal(t, []string{"Doe, Jane", "Jane Doe", "Doe, J.", "J. Doe"}, got)
}

func TestPersonNamesDegenerate(t *testing.T) {
	assert.Nil(t, PersonNames("   "))
	assert.Equal(t, []string{"Cher"}, PersonNames("Cher"))
}

func TestPersonNamesStable(t *testing.T) {
	first := PersonNames("Maria de la Cruz")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, PersonNames("Maria de la Cruz"))
	}
}

func TestMatchPerson(t *testing.T) {
	tests := []struct {
		candidate, original string
		want                bool
	}{
		{"Jane Doe", "Jane Doe", true},
		{"JANE DOE", "jane doe", true},
		{"Doe, Jane", "Jane Doe", true},
		{"J. Doe", "Jane A. Doe", true},
		{"Doe, J.", "Jane Doe", true},
		{"José García", "Jose Garcia", true},
		{"John Doe", "Jane Doe", false},
		{"Jane Smith", "Jane Doe", false},
		{"K. Doe", "Jane Doe", false},
		{"Doe", "Jane Doe", false},
		{"", "Jane Doe", false},
		{"John Smith", "John Smith Jr.", true},
		{"Smith, John", "John Smith III", true},
		{"J. Smith", "John Smith, Jr.", true},
		{"John Smith Sr.", "John Jones Sr.", false},
	}
	for _, tt := range tests {
		t.Run(tt.candidate+"/"+tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPerson(tt.candidate, tt.original))
		})
	}
}

func TestNormalizeInstitution(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  The University of Utah . ", "University of Utah"},
		{"University of Wisconsin – Madison", "University of Wisconsin-Madison"},
		{"University of California ,Berkeley", "University of California, Berkeley"},
		{"Purdue   University", "Purdue University"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeInstitution(tt.in))
		})
	}
}

func TestInstitutionsAbbreviationTable(t *testing.T) {
	mit := Institutions("MIT")
	full := Institutions("Massachusetts Institute of Technology")
	assert.Contains(t, mit, "Massachusetts Institute of Technology")
	assert.Contains(t, full, "MIT")

	shared := 0
	for _, v := range mit {
		for _, w := range full {
			if strings.EqualFold(v, w) {
				shared++
			}
		}
	}
	assert.Positive(t, shared, "MIT and its full name must share a variant")
}

func TestInstitutionsPatterns(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name:    "trailing university",
			in:      "Stanford University",
			want:    []string{"Stanford University", "University of Stanford"},
			notWant: nil,
		},
		{
			name:    "state universities keep their order",
			in:      "Ohio State University",
			want:    []string{"Ohio State University", "The Ohio State University"},
			notWant: []string{"University of Ohio State"},
		},
		{
			name:    "campus with at",
			in:      "University of Texas at Austin",
			want:    []string{"University of Texas, Austin", "University of Texas-Austin", "UT Austin"},
			notWant: []string{"University of Texas"},
		},
		{
			name:    "campus with comma",
			in:      "University of California, Berkeley",
			want:    []string{"University of California at Berkeley", "UC Berkeley"},
			notWant: []string{"University of California"},
		},
		{
			name:    "campus with hyphen",
			in:      "University of Wisconsin-Madison",
			want:    []string{"University of Wisconsin at Madison", "UW Madison"},
			notWant: []string{"University of Wisconsin"},
		},
		{
			name: "ampersand to and",
			in:   "Texas A&M University",
			want: []string{"Texas A and M University", "TAMU"},
		},
		{
			name: "and to ampersand",
			in:   "Virginia Polytechnic Institute and State University",
			want: []string{"Virginia Polytechnic Institute & State University", "Virginia Tech"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Institutions(tt.in)
			require.NotEmpty(t, got)
			assert.Equal(t, NormalizeInstitution(tt.in), got[0])
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, got, w)
			}
			assertNoFoldDuplicates(t, got)
		})
	}
}

func TestInstitutionsEmpty(t *testing.T) {
	assert.Nil(t, Institutions(" , "))
}

func TestMatchInstitution(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"MIT", "Massachusetts Institute of Technology", true},
		{"UC Berkeley", "University of California, Berkeley", true},
		{"University of Texas at Austin", "UT Austin", true},
		{"Purdue University", "Purdue University Main Campus", true},
		{"the university of utah", "University of Utah", true},
		{"Universität Wien", "Universitat Wien", true},
		{"New York University", "SUNY Buffalo", false},
		{"University of Texas at Austin", "University of Texas at Arlington", false},
		{"Stanford University", "Harvard University", false},
		{"", "MIT", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchInstitution(tt.a, tt.b))
		})
	}
}
