package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/stocksage/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHeadlines struct {
	set *models.HeadlineSet
	err error
}

func (f *fakeHeadlines) Fetch(ctx context.Context) (*models.HeadlineSet, error) {
	return f.set, f.err
}

type fakePredictor struct {
	result *models.PredictionResult
	err    error
	model  string
	inputs []models.PredictionInput
}

func (f *fakePredictor) ModelName() string {
	if f.model == "" {
		return "fake-model"
	}
	return f.model
}

func (f *fakePredictor) Predict(ctx context.Context, input models.PredictionInput) (*models.PredictionResult, error) {
	f.inputs = append(f.inputs, input)
	return f.result, f.err
}

func newTestRouter(headlines HeadlineFetcher, predictor Predictor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(headlines, predictor), []string{"http://localhost:3000"})
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetNews(t *testing.T) {
	image := "https://a.example/x.jpg"
	set := &models.HeadlineSet{
		NewsHeadlines: []models.NewsItem{
			models.NormalizeNewsAPIArticle(models.NewsAPIArticle{Title: "Stocks rise", URLToImage: image}),
		},
		Hostnames: []string{"a.example"},
	}
	r := newTestRouter(&fakeHeadlines{set: set}, &fakePredictor{})

	w := perform(r, http.MethodGet, "/api/news", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{"a.example"}, body["hostnames"])

	headlines := body["newsHeadlines"].([]any)
	require.Len(t, headlines, 1)
	item := headlines[0].(map[string]any)
	assert.Equal(t, "Stocks rise", item["title"])
	assert.Contains(t, item, "author")
	assert.Nil(t, item["author"])
}

func TestGetNewsFailures(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "upstream", err: fmt.Errorf("boom: %w", models.ErrUpstreamUnavailable), status: http.StatusInternalServerError},
		{name: "missing key", err: fmt.Errorf("no key: %w", models.ErrMissingCredential), status: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeHeadlines{err: tc.err}, &fakePredictor{})

			w := perform(r, http.MethodGet, "/api/news", "")
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"message":"Failed to fetch news headlines"}`, w.Body.String())
		})
	}
}

func TestPostPredict(t *testing.T) {
	predictor := &fakePredictor{
		result: &models.PredictionResult{TrendPrediction: "bullish", ConfidenceLevel: 0.7, Reasoning: "..."},
		model:  "gpt-4o-mini",
	}
	r := newTestRouter(&fakeHeadlines{}, predictor)

	w := perform(r, http.MethodPost, "/api/predict", `{"stockSymbol":"PLTR"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gpt-4o-mini", w.Header().Get(PredictionModelHeader))
	assert.JSONEq(t, `{"trendPrediction":"bullish","confidenceLevel":0.7,"reasoning":"..."}`, w.Body.String())
	require.Len(t, predictor.inputs, 1)
	assert.Equal(t, "PLTR", predictor.inputs[0].StockSymbol)
}

func TestPostPredictErrorStatus(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "invalid input",
			err:     fmt.Errorf("[PredictionFlow] both set: %w", models.ErrInvalidInput),
			status:  http.StatusBadRequest,
			message: "Provide exactly one of stockSymbol or marketNews",
		},
		{
			name:    "no data",
			err:     fmt.Errorf("[PredictionFlow] failed to retrieve stock data for ZZZZ: [FMPClient] no quote for ZZZZ: %w", models.ErrNoData),
			status:  http.StatusNotFound,
			message: "Failed to retrieve stock data for ZZZZ",
		},
		{
			name:    "model down",
			err:     fmt.Errorf("[OpenAIClient] openai API error: %w: dial tcp 10.0.0.1:443", models.ErrUpstreamUnavailable),
			status:  http.StatusBadGateway,
			message: "Prediction model is unavailable for ZZZZ",
		},
		{
			name:    "bad model reply",
			err:     fmt.Errorf("[PredictionFlow] reply has no reasoning: %w", models.ErrMalformedResponse),
			status:  http.StatusBadGateway,
			message: "Prediction model returned an invalid response for ZZZZ",
		},
		{
			name:    "missing key",
			err:     fmt.Errorf("[FMPClient] FINANCIAL_API_KEY is not set: %w", models.ErrMissingCredential),
			status:  http.StatusServiceUnavailable,
			message: "Prediction service is not configured",
		},
		{
			name:    "unclassified",
			err:     fmt.Errorf("[Prompt] template exploded"),
			status:  http.StatusInternalServerError,
			message: "Failed to generate prediction for ZZZZ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeHeadlines{}, &fakePredictor{err: tc.err})

			w := perform(r, http.MethodPost, "/api/predict", `{"stockSymbol":" zzzz "}`)
			assert.Equal(t, tc.status, w.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Message)
			assert.NotContains(t, body.Message, "[")
		})
	}
}

func TestPostPredictMarketErrorMessage(t *testing.T) {
	r := newTestRouter(&fakeHeadlines{}, &fakePredictor{err: models.ErrUpstreamUnavailable, model: "vader"})

	w := perform(r, http.MethodPost, "/api/predict", `{"marketNews":"Fed holds rates"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"Prediction model is unavailable for the market"}`, w.Body.String())
	assert.Equal(t, "vader", w.Header().Get(PredictionModelHeader))
}

func TestPostPredictRejectsBadBody(t *testing.T) {
	predictor := &fakePredictor{}
	r := newTestRouter(&fakeHeadlines{}, predictor)

	w := perform(r, http.MethodPost, "/api/predict", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, predictor.inputs)
}

func TestStocksEndpoints(t *testing.T) {
	r := newTestRouter(&fakeHeadlines{}, &fakePredictor{})

	w := perform(r, http.MethodGet, "/api/stocks/gainers?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var gainers []models.StockData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gainers))
	assert.Len(t, gainers, 2)

	w = perform(r, http.MethodGet, "/api/stocks/losers?limit=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var losers []models.StockData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &losers))
	assert.Len(t, losers, 5)

	w = perform(r, http.MethodGet, "/api/stocks/PLTR/history?period=3mo", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []models.HistoricalDataPoint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Len(t, history, 22)
}

func TestHealthAndRequestID(t *testing.T) {
	r := newTestRouter(&fakeHeadlines{}, &fakePredictor{})

	w := perform(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc123", w.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(&fakeHeadlines{}, &fakePredictor{})

	w := perform(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
