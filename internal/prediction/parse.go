package prediction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spacesedan/stocksage/internal/models"
)

type rawResult struct {
	TrendPrediction *string  `json:"trendPrediction"`
	ConfidenceLevel *float64 `json:"confidenceLevel"`
	Reasoning       *string  `json:"reasoning"`
}

// ParseResult validates a model reply against the prediction schema.
func ParseResult(reply string) (*models.PredictionResult, error) {
	content := cleanJSONResponse(reply)

	var raw rawResult
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("[PredictionFlow] reply is not valid JSON: %w: %w", models.ErrMalformedResponse, err)
	}

	switch {
	case raw.TrendPrediction == nil || strings.TrimSpace(*raw.TrendPrediction) == "":
		return nil, fmt.Errorf("[PredictionFlow] reply has no trendPrediction: %w", models.ErrMalformedResponse)
	case raw.ConfidenceLevel == nil:
		return nil, fmt.Errorf("[PredictionFlow] reply has no confidenceLevel: %w", models.ErrMalformedResponse)
	case *raw.ConfidenceLevel < 0 || *raw.ConfidenceLevel > 1:
		return nil, fmt.Errorf("[PredictionFlow] confidenceLevel %v outside [0,1]: %w", *raw.ConfidenceLevel, models.ErrMalformedResponse)
	case raw.Reasoning == nil:
		return nil, fmt.Errorf("[PredictionFlow] reply has no reasoning: %w", models.ErrMalformedResponse)
	}

	return &models.PredictionResult{
		TrendPrediction: *raw.TrendPrediction,
		ConfidenceLevel: *raw.ConfidenceLevel,
		Reasoning:       *raw.Reasoning,
	}, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// models sometimes wrap the object in prose
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
