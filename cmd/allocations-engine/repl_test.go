// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/allocations-engine/internal/allocations"
	"github.com/pdiddy/allocations-engine/internal/engine"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

func fixtureEngine(t *testing.T) *engine.Engine {
	t.Helper()
	src, err := allocations.LoadFixture("../../testdata/projects.yaml")
	require.NoError(t, err)
	eng, err := engine.New(src, types.EngineConfig{
		Similar: types.SimilarConfig{Threshold: 0.4, IncludeSameField: true},
	})
	require.NoError(t, err)
	t.Cleanup(eng.Release)
	return eng
}

func runLines(t *testing.T, eng *engine.Engine, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, repl(context.Background(), eng, in, &out, false))
	return out.String()
}

func TestReplSearch(t *testing.T) {
	out := runLines(t, fixtureEngine(t), "search protein")
	assert.Contains(t, out, "Machine Learning for Protein Folding")
	assert.Contains(t, out, "Deep Learning for Protein Structure")
	assert.NotContains(t, out, "Coastal Hydrology")
}

func TestReplSimilar(t *testing.T) {
	out := runLines(t, fixtureEngine(t), "similar 1")
	assert.Contains(t, out, "Reference: 1 Machine Learning for Protein Folding")
	assert.Contains(t, out, "Deep Learning for Protein Structure")
}

func TestReplVariants(t *testing.T) {
	out := runLines(t, fixtureEngine(t), "variants Jane A. Doe", "ivariants MIT")
	assert.Contains(t, out, "Doe, Jane\n")
	assert.Contains(t, out, "Massachusetts Institute of Technology\n")
}

func TestReplCorrelateWithoutAwards(t *testing.T) {
	out := runLines(t, fixtureEngine(t), "correlate 1")
	assert.Contains(t, out, "Project 1: Machine Learning for Protein Folding")
	assert.Contains(t, out, "Status: collaborator_unavailable")
}

func TestReplErrorsDoNotStopLoop(t *testing.T) {
	out := runLines(t, fixtureEngine(t),
		"frobnicate",
		"search",
		"similar abc",
		"correlate 99",
		"variants Cher",
	)
	assert.Contains(t, out, `error: unknown command "frobnicate"`)
	assert.Contains(t, out, "error: empty query")
	assert.Contains(t, out, `error: invalid project id "abc"`)
	assert.Contains(t, out, "error: project 99: project not found")
	assert.Contains(t, out, "Cher\n")
}

func TestReplQuitStopsReading(t *testing.T) {
	out := runLines(t, fixtureEngine(t), "quit", "variants Cher")
	assert.Empty(t, out)
}

func TestReplCache(t *testing.T) {
	eng := fixtureEngine(t)
	out := runLines(t, eng, "search protein", "cache")
	assert.Contains(t, out, "evicted 0 expired pages, 3 cached")
}

func TestParseDay(t *testing.T) {
	got, err := parseDay("from", "2023-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDay("from", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseDay("to", "03/01/2023")
	assert.ErrorContains(t, err, "invalid --to date")
}
