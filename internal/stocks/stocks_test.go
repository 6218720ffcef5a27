package stocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopGainers(t *testing.T) {
	all := TopGainers(0)
	require.Len(t, all, 5)
	assert.Equal(t, "GME", all[0].Symbol)

	top := TopGainers(2)
	require.Len(t, top, 2)
	assert.Equal(t, "AMC", top[1].Symbol)

	assert.Len(t, TopGainers(50), 5)
}

func TestTopLosers(t *testing.T) {
	top := TopLosers(3)
	require.Len(t, top, 3)
	assert.Equal(t, "BBBY", top[0].Symbol)
	assert.Equal(t, -20.30, top[0].ChangePercent)
	for _, s := range top {
		assert.Negative(t, s.ChangePercent)
	}
}

func TestResultsAreCopies(t *testing.T) {
	top := TopGainers(1)
	top[0].Symbol = "MUTATED"
	assert.Equal(t, "GME", TopGainers(1)[0].Symbol)
}

func TestHistoricalData(t *testing.T) {
	points := HistoricalData("PLTR", "1mo")
	require.Len(t, points, 22)
	assert.Equal(t, "2024-01-01", points[0].Date)
	assert.Equal(t, 30.50, points[21].ClosingPrice)
}
