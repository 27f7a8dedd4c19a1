// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/allocations-engine/internal/correlate"
	"github.com/pdiddy/allocations-engine/internal/engine"
	"github.com/pdiddy/allocations-engine/pkg/types"
)

func TestWriteCorrelationAlignsWideTitles(t *testing.T) {
	corr := correlate.Correlation{
		Project: types.Project{ID: 7, Title: "Ocean Models", PI: "Jane Doe", Institution: "MIT"},
		Awards: []types.AwardRecord{
			{AwardNumber: "2138259", Title: "Ocean Models", Amount: 1200},
			{AwardNumber: "2138260", Title: "海洋模型与气候预测的大规模并行计算研究项目第二阶段", Amount: 980000},
		},
		Status: correlate.StatusOK,
	}
	var out bytes.Buffer
	writeCorrelation(corr, &out)

	var amountAt []int
	for _, line := range strings.Split(out.String(), "\n") {
		if i := strings.Index(line, "$"); strings.HasPrefix(line, "  21382") && i >= 0 {
			amountAt = append(amountAt, runewidth.StringWidth(line[:i]))
		}
	}
	require.Len(t, amountAt, 2)
	assert.Equal(t, amountAt[0], amountAt[1], "amount column must start at the same display cell")
}

func TestWriteInstitutionCorrelationAlignsWideNames(t *testing.T) {
	agg := correlate.InstitutionCorrelation{
		Institution: "Tsinghua University",
		Status:      correlate.StatusOK,
		Correlations: []correlate.Correlation{
			{Project: types.Project{ID: 1, PI: "Zhang Wěi 张伟"}, Status: correlate.StatusOK},
			{Project: types.Project{ID: 2, PI: "Li Na"}, Status: correlate.StatusNoMatches},
		},
	}
	var out bytes.Buffer
	writeInstitutionCorrelation(agg, &out)

	var statusAt []int
	for _, line := range strings.Split(out.String(), "\n") {
		for _, s := range []string{string(correlate.StatusOK), string(correlate.StatusNoMatches)} {
			if i := strings.Index(line, "  "+s+" ("); i >= 0 {
				statusAt = append(statusAt, runewidth.StringWidth(line[:i]))
			}
		}
	}
	require.Len(t, statusAt, 2)
	assert.Equal(t, statusAt[0], statusAt[1])
}

func TestUnavailableStatus(t *testing.T) {
	assert.NoError(t, unavailable(correlate.StatusOK))
	assert.NoError(t, unavailable(correlate.StatusDeadline))
	assert.True(t, errors.Is(unavailable(correlate.StatusUnavailable), engine.ErrCollaboratorUnavailable))
}
