package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
)

// FMPClient talks to the Financial Modeling Prep v3 API.
type FMPClient struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
}

func NewFMPClient(apiKey, baseURL string, httpClient *http.Client) *FMPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = FMP_BASE_URL
	}
	return &FMPClient{
		Client:  httpClient,
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *FMPClient) Name() string {
	return "fmp"
}

// FetchQuote returns the first quote for symbol. An empty result is
// ErrNoData; transport and status failures are ErrUpstreamUnavailable.
func (c *FMPClient) FetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	var quotes []models.Quote
	err := c.getJSON(ctx, "/api/v3/quote/"+url.PathEscape(symbol), nil, &quotes)
	if err != nil {
		slog.Error("[FMPClient] Error fetching stock data",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()))
		return nil, err
	}

	if len(quotes) == 0 {
		slog.Warn("[FMPClient] No data found for symbol", slog.String("symbol", symbol))
		return nil, fmt.Errorf("[FMPClient] no quote for %s: %w", symbol, models.ErrNoData)
	}

	return &quotes[0], nil
}

// FetchRecentNews returns at most MAX_RECENT_NEWS normalized items. Any
// failure is logged and yields an empty slice.
func (c *FMPClient) FetchRecentNews(ctx context.Context, symbol string) []models.NewsItem {
	var raw []models.FMPStockNews
	err := c.getJSON(ctx, "/api/v3/stock_news", url.Values{"tickers": {symbol}}, &raw)
	if err != nil {
		slog.Error("[FMPClient] Error fetching stock news",
			slog.String("symbol", symbol),
			slog.String("error", err.Error()))
		return []models.NewsItem{}
	}

	if len(raw) > MAX_RECENT_NEWS {
		raw = raw[:MAX_RECENT_NEWS]
	}

	items := make([]models.NewsItem, 0, len(raw))
	for _, n := range raw {
		items = append(items, models.NormalizeFMPStockNews(n))
	}
	return items
}

func (c *FMPClient) getJSON(ctx context.Context, path string, query url.Values, out any) (err error) {
	defer func() { monitoring.RecordUpstream(c.Name(), err) }()

	if c.APIKey == "" {
		return fmt.Errorf("[FMPClient] FINANCIAL_API_KEY is not set: %w", models.ErrMissingCredential)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", c.APIKey)
	endpoint := c.BaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("[FMPClient] failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)
	req.Header.Set("Accept", "application/json")

	res, err := c.Client.Do(req)
	if err != nil {
		// the url.Error would echo the api key
		return fmt.Errorf("[FMPClient] request to %s failed: %w", path, models.ErrUpstreamUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		return fmt.Errorf("[FMPClient] API request failed with status %d: %w",
			res.StatusCode, models.ErrUpstreamUnavailable)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("[FMPClient] failed to decode response: %w: %w", models.ErrUpstreamUnavailable, err)
	}
	return nil
}
