package prediction

import (
	"testing"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	testCases := []struct {
		name  string
		reply string
		want  *models.PredictionResult
	}{
		{
			name:  "plain object",
			reply: `{"trendPrediction":"bullish","confidenceLevel":0.7,"reasoning":"strong demand"}`,
			want:  &models.PredictionResult{TrendPrediction: "bullish", ConfidenceLevel: 0.7, Reasoning: "strong demand"},
		},
		{
			name:  "fenced",
			reply: "```json\n{\"trendPrediction\":\"neutral\",\"confidenceLevel\":0.5,\"reasoning\":\"\"}\n```",
			want:  &models.PredictionResult{TrendPrediction: "neutral", ConfidenceLevel: 0.5},
		},
		{
			name:  "surrounded by prose",
			reply: "Here is my answer: {\"trendPrediction\":\"bearish\",\"confidenceLevel\":1,\"reasoning\":\"r\"} Hope it helps.",
			want:  &models.PredictionResult{TrendPrediction: "bearish", ConfidenceLevel: 1, Reasoning: "r"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseResult(tc.reply)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseResultRejectsMalformed(t *testing.T) {
	replies := map[string]string{
		"not json":             "I think the market will go up.",
		"missing trend":        `{"confidenceLevel":0.5,"reasoning":"r"}`,
		"blank trend":          `{"trendPrediction":"  ","confidenceLevel":0.5,"reasoning":"r"}`,
		"missing confidence":   `{"trendPrediction":"bullish","reasoning":"r"}`,
		"confidence too high":  `{"trendPrediction":"bullish","confidenceLevel":1.01,"reasoning":"r"}`,
		"negative confidence":  `{"trendPrediction":"bullish","confidenceLevel":-0.1,"reasoning":"r"}`,
		"confidence as string": `{"trendPrediction":"bullish","confidenceLevel":"high","reasoning":"r"}`,
		"missing reasoning":    `{"trendPrediction":"bullish","confidenceLevel":0.5}`,
	}

	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResult(reply)
			require.ErrorIs(t, err, models.ErrMalformedResponse)
		})
	}
}
