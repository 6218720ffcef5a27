package models

import "time"

// PredictionInput carries exactly one of StockSymbol or MarketNews.
type PredictionInput struct {
	StockSymbol string `json:"stockSymbol,omitempty"`
	MarketNews  string `json:"marketNews,omitempty"`
}

type PredictionResult struct {
	TrendPrediction string  `json:"trendPrediction"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
	Reasoning       string  `json:"reasoning"`
}

// PredictionEvent is published after a prediction resolves.
type PredictionEvent struct {
	Input     PredictionInput  `json:"input"`
	Result    PredictionResult `json:"result"`
	Model     string           `json:"model"`
	Provider  string           `json:"provider,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
