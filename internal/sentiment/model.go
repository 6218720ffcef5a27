package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/prompt"
)

const VADER_MODEL_NAME = "vader"

// Model predicts a trend offline by averaging the VADER compound score of
// each news line. It answers in the same JSON shape an LLM is asked for.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

func (m *Model) ModelName() string {
	return VADER_MODEL_NAME
}

func (m *Model) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := p.Fields.MarketNews
	subject := "the US stock market"
	if p.Fields.StockSymbol != "" {
		text = p.Fields.StockNews
		subject = p.Fields.StockSymbol
	}

	var (
		total float64
		count int
	)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		score, _ := Analyze(line)
		total += score
		count++
	}

	result := models.PredictionResult{TrendPrediction: "neutral"}
	if count == 0 {
		result.Reasoning = fmt.Sprintf("No recent news available for %s; sentiment is treated as neutral.", subject)
	} else {
		avg := total / float64(count)
		result.TrendPrediction = Label(avg)
		result.ConfidenceLevel = math.Round(math.Min(math.Abs(avg), 1)*100) / 100
		result.Reasoning = fmt.Sprintf("Average VADER compound score %.2f across %d news item(s) for %s.", avg, count, subject)
	}

	slog.Debug("[VaderModel] Scored news",
		slog.String("subject", subject),
		slog.String("trend", result.TrendPrediction),
		slog.Int("items", count))

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("[VaderModel] failed to encode result: %w", err)
	}
	return string(out), nil
}
