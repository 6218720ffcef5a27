package prediction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
	"github.com/spacesedan/stocksage/internal/prompt"
)

const (
	VariantStock  = "stock"
	VariantMarket = "market"
)

// MarketDataProvider supplies the quote and the recent news for a symbol.
// FetchRecentNews never fails; it degrades to an empty slice.
type MarketDataProvider interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (*models.Quote, error)
	FetchRecentNews(ctx context.Context, symbol string) []models.NewsItem
}

// Model turns a rendered prompt into a raw text reply.
type Model interface {
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
	ModelName() string
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.PredictionEvent) error
}

type Flow struct {
	provider  MarketDataProvider
	model     Model
	publisher EventPublisher
	language  string
	now       func() time.Time
}

// NewFlow wires a prediction flow. publisher may be nil.
func NewFlow(provider MarketDataProvider, model Model, publisher EventPublisher, language string) *Flow {
	return &Flow{
		provider:  provider,
		model:     model,
		publisher: publisher,
		language:  language,
		now:       time.Now,
	}
}

// ModelName reports the model answering predictions.
func (f *Flow) ModelName() string {
	return f.model.ModelName()
}

// Validate normalizes the input and checks that exactly one of the symbol
// or the market news is set.
func Validate(input models.PredictionInput) (models.PredictionInput, error) {
	input.StockSymbol = strings.ToUpper(strings.TrimSpace(input.StockSymbol))
	input.MarketNews = strings.TrimSpace(input.MarketNews)

	switch {
	case input.StockSymbol == "" && input.MarketNews == "":
		return input, fmt.Errorf("[PredictionFlow] either stockSymbol or marketNews is required: %w", models.ErrInvalidInput)
	case input.StockSymbol != "" && input.MarketNews != "":
		return input, fmt.Errorf("[PredictionFlow] stockSymbol and marketNews are mutually exclusive: %w", models.ErrInvalidInput)
	}
	return input, nil
}

// Predict runs one prediction. For a symbol the quote and recent news are
// fetched concurrently; without a quote the model is never called.
func (f *Flow) Predict(ctx context.Context, input models.PredictionInput) (*models.PredictionResult, error) {
	input, err := Validate(input)
	if err != nil {
		return nil, err
	}

	variant := VariantMarket
	if input.StockSymbol != "" {
		variant = VariantStock
	}

	result, err := f.predict(ctx, input)
	if err != nil {
		outcome := monitoring.OutcomeFailure
		if errors.Is(err, models.ErrNoData) {
			outcome = monitoring.OutcomeNoData
		}
		monitoring.Predictions.WithLabelValues(variant, outcome).Inc()
		slog.Error("[PredictionFlow] Prediction failed",
			slog.String("variant", variant),
			slog.String("error", err.Error()))
		return nil, err
	}
	monitoring.Predictions.WithLabelValues(variant, monitoring.OutcomeSuccess).Inc()

	f.publish(ctx, input, *result)
	return result, nil
}

func (f *Flow) predict(ctx context.Context, input models.PredictionInput) (*models.PredictionResult, error) {
	fields := prompt.Fields{Language: f.language}

	if input.StockSymbol != "" {
		fields.StockSymbol = input.StockSymbol

		quote, news, err := f.fetch(ctx, input.StockSymbol)
		if err != nil {
			return nil, err
		}

		fields.StockData, err = prompt.FormatQuote(quote)
		if err != nil {
			return nil, err
		}
		fields.StockNews = prompt.FormatNews(news)
	} else {
		fields.MarketNews = input.MarketNews
	}

	p, err := prompt.Render(fields)
	if err != nil {
		return nil, err
	}

	slog.Info("[PredictionFlow] Invoking model", slog.String("model", f.model.ModelName()))
	reply, err := f.model.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("[PredictionFlow] model %s failed: %w: %w", f.model.ModelName(), models.ErrUpstreamUnavailable, err)
	}

	return ParseResult(reply)
}

func (f *Flow) fetch(ctx context.Context, symbol string) (*models.Quote, []models.NewsItem, error) {
	var (
		wg       sync.WaitGroup
		quote    *models.Quote
		quoteErr error
		news     []models.NewsItem
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		quote, quoteErr = f.provider.FetchQuote(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		news = f.provider.FetchRecentNews(ctx, symbol)
	}()
	wg.Wait()

	if quoteErr != nil {
		if errors.Is(quoteErr, models.ErrNoData) {
			return nil, nil, fmt.Errorf("[PredictionFlow] failed to retrieve stock data for %s: %w", symbol, quoteErr)
		}
		return nil, nil, fmt.Errorf("[PredictionFlow] failed to retrieve stock data for %s: %w: %w", symbol, models.ErrNoData, quoteErr)
	}
	if quote == nil {
		return nil, nil, fmt.Errorf("[PredictionFlow] failed to retrieve stock data for %s: %w", symbol, models.ErrNoData)
	}

	slog.Info("[PredictionFlow] Fetched market data",
		slog.String("symbol", symbol),
		slog.String("provider", f.provider.Name()),
		slog.Int("news", len(news)))
	return quote, news, nil
}

func (f *Flow) publish(ctx context.Context, input models.PredictionInput, result models.PredictionResult) {
	if f.publisher == nil {
		return
	}

	event := models.PredictionEvent{
		Input:     input,
		Result:    result,
		Model:     f.model.ModelName(),
		CreatedAt: f.now().UTC(),
	}
	if input.StockSymbol != "" {
		event.Provider = f.provider.Name()
	}

	if err := f.publisher.Publish(ctx, event); err != nil {
		slog.Warn("[PredictionFlow] Failed to publish prediction event",
			slog.String("error", err.Error()))
	}
}
