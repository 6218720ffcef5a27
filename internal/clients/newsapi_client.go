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
	"time"

	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
)

const NEWS_API_TOP_HEADLINES_PATH = "/v2/top-headlines"

type NewsAPIClient struct {
	Client  *http.Client
	APIKey  string
	BaseURL string
	// MaxRetries is the total number of attempts. 1 disables retrying on
	// 429 and 5xx responses.
	MaxRetries int
	sleep      func(ctx context.Context, d time.Duration) error
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func NewNewsAPIClient(apiKey, baseURL string, maxRetries int, httpClient *http.Client) *NewsAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = NEWS_API_BASE_URL
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &NewsAPIClient{
		Client:     httpClient,
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		MaxRetries: maxRetries,
		sleep:      sleepContext,
	}
}

// GetTopHeadlines fetches the US business top headlines.
func (n *NewsAPIClient) GetTopHeadlines(ctx context.Context) (*models.NewsAPITopHeadlinesResponse, error) {
	if n.APIKey == "" {
		slog.Error("[NewsAPIClient] NEWS_API_KEY is not set in environment variables")
		return nil, fmt.Errorf("[NewsAPIClient] NEWS_API_KEY is not set: %w", models.ErrMissingCredential)
	}

	query := url.Values{
		"country":  {"us"},
		"category": {"business"},
		"apiKey":   {n.APIKey},
	}
	endpoint := n.BaseURL + NEWS_API_TOP_HEADLINES_PATH + "?" + query.Encode()

	var lastErr error
	backoff := INITIAL_BACKOFF

	for attempt := 1; attempt <= n.MaxRetries; attempt++ {
		slog.Info("[NewsAPIClient] Fetching top headlines", slog.Int("attempt", attempt))

		response, retry, err := n.do(ctx, endpoint)
		monitoring.RecordUpstream("newsapi", err)
		if err == nil {
			slog.Info("[NewsAPIClient] Successfully fetched headlines",
				slog.Int("articles", len(response.Articles)))
			return response, nil
		}
		lastErr = err
		if !retry || attempt == n.MaxRetries {
			break
		}

		slog.Warn("[NewsAPIClient] Retrying after backoff",
			slog.Duration("backoff", backoff), slog.Int("attempt", attempt))
		if err := n.sleep(ctx, backoff); err != nil {
			return nil, fmt.Errorf("[NewsAPIClient] retry canceled: %w: %w", models.ErrUpstreamUnavailable, err)
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return nil, lastErr
}

// do performs one attempt and reports whether a failure is worth retrying.
func (n *NewsAPIClient) do(ctx context.Context, endpoint string) (*models.NewsAPITopHeadlinesResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("[NewsAPIClient] failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	res, err := n.Client.Do(req)
	if err != nil {
		slog.Error("[NewsAPIClient] Request failed")
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("[NewsAPIClient] request canceled: %w: %w", models.ErrUpstreamUnavailable, ctx.Err())
		}
		return nil, true, fmt.Errorf("[NewsAPIClient] request failed: %w", models.ErrUpstreamUnavailable)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		var response models.NewsAPITopHeadlinesResponse
		if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
			slog.Error("[NewsAPIClient] Failed to parse JSON response", slog.String("error", err.Error()))
			return nil, false, fmt.Errorf("[NewsAPIClient] failed to parse response: %w: %w", models.ErrUpstreamUnavailable, err)
		}
		if response.Status != "ok" {
			slog.Error("[NewsAPIClient] Failed to fetch news headlines", slog.String("message", response.Message))
			return nil, false, fmt.Errorf("[NewsAPIClient] status %q: %s: %w",
				response.Status, response.Message, models.ErrUpstreamUnavailable)
		}
		return &response, false, nil
	case res.StatusCode == http.StatusBadRequest:
		slog.Warn("[NewsAPIClient] Bad request: check query parameters")
		return nil, false, n.statusError(res)
	case res.StatusCode == http.StatusUnauthorized:
		slog.Error("[NewsAPIClient] Invalid API Key, check credentials")
		return nil, false, n.statusError(res)
	case res.StatusCode == http.StatusForbidden:
		slog.Error("[NewsAPIClient] Access forbidden, check API key permissions")
		return nil, false, n.statusError(res)
	case res.StatusCode == http.StatusTooManyRequests:
		slog.Warn("[NewsAPIClient] Rate limit exceeded")
		return nil, true, n.statusError(res)
	case res.StatusCode >= http.StatusInternalServerError:
		slog.Warn("[NewsAPIClient] Server error", slog.Int("statusCode", res.StatusCode))
		return nil, true, n.statusError(res)
	default:
		slog.Warn("[NewsAPIClient] Unexpected response", slog.Int("statusCode", res.StatusCode))
		return nil, false, n.statusError(res)
	}
}

func (n *NewsAPIClient) statusError(res *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	msg := http.StatusText(res.StatusCode)
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		msg = body.Message
	}
	return fmt.Errorf("[NewsAPIClient] %d %s: %w", res.StatusCode, msg, models.ErrUpstreamUnavailable)
}
