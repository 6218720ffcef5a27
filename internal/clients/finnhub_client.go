package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
)

const finnhubNewsLookback = 7 * 24 * time.Hour

// FinnhubClient serves the same quote/news contract as FMPClient from the
// Finnhub API.
type FinnhubClient struct {
	client *finnhub.DefaultApiService
	apiKey string
	now    func() time.Time
}

// NewFinnhubClient builds the SDK client. An empty baseURL keeps the SDK
// default server.
func NewFinnhubClient(apiKey, baseURL string, httpClient *http.Client) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = USER_AGENT
	if baseURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: strings.TrimRight(baseURL, "/")}}
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &FinnhubClient{
		client: finnhub.NewAPIClient(cfg).DefaultApi,
		apiKey: apiKey,
		now:    time.Now,
	}
}

func (c *FinnhubClient) Name() string {
	return "finnhub"
}

func (c *FinnhubClient) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("[FinnhubClient] FINNHUB_API_KEY is not set: %w", models.ErrMissingCredential)
	}

	res, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	monitoring.RecordUpstream(c.Name(), err)
	if err != nil {
		slog.Error("[FinnhubClient] Error fetching stock data",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("[FinnhubClient] quote request failed: %w: %w", models.ErrUpstreamUnavailable, err)
	}

	// unknown symbols come back as an all-zero quote
	if f32(res.C) == 0 && f32(res.Pc) == 0 {
		slog.Warn("[FinnhubClient] No data found for symbol", slog.String("symbol", symbol))
		return nil, fmt.Errorf("[FinnhubClient] no quote for %s: %w", symbol, models.ErrNoData)
	}

	return &models.Quote{
		Symbol:            symbol,
		Price:             f32(res.C),
		Change:            f32(res.D),
		ChangesPercentage: f32(res.Dp),
		DayHigh:           f32(res.H),
		DayLow:            f32(res.L),
		Open:              f32(res.O),
		PreviousClose:     f32(res.Pc),
		Timestamp:         c.now().Unix(),
	}, nil
}

func (c *FinnhubClient) FetchRecentNews(ctx context.Context, symbol string) []models.NewsItem {
	if c.apiKey == "" {
		slog.Error("[FinnhubClient] FINNHUB_API_KEY is not set")
		return []models.NewsItem{}
	}

	to := c.now().UTC()
	from := to.Add(-finnhubNewsLookback)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format(time.DateOnly)).
		To(to.Format(time.DateOnly)).
		Execute()
	monitoring.RecordUpstream(c.Name(), err)
	if err != nil {
		slog.Error("[FinnhubClient] Error fetching stock news",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()))
		return []models.NewsItem{}
	}

	if len(res) > MAX_RECENT_NEWS {
		res = res[:MAX_RECENT_NEWS]
	}

	items := make([]models.NewsItem, 0, len(res))
	for _, n := range res {
		a := models.NewsArticle{
			Source:   str(n.Source),
			Headline: str(n.Headline),
			Summary:  str(n.Summary),
			URL:      str(n.Url),
			Image:    str(n.Image),
		}
		if n.Datetime != nil {
			a.PublishedAt = time.Unix(*n.Datetime, 0).UTC().Format(time.RFC3339)
		}
		items = append(items, models.NormalizeNewsArticle(a))
	}
	return items
}

func f32(v *float32) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
