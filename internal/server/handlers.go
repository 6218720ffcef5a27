package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/stocks"
)

type HeadlineFetcher interface {
	Fetch(ctx context.Context) (*models.HeadlineSet, error)
}

type Predictor interface {
	Predict(ctx context.Context, input models.PredictionInput) (*models.PredictionResult, error)
	ModelName() string
}

// PredictionModelHeader names the model that produced a prediction, so
// callers can tell an LLM answer from the offline sentiment fallback.
const PredictionModelHeader = "X-Prediction-Model"

type Handler struct {
	headlines HeadlineFetcher
	predictor Predictor
}

func NewHandler(headlines HeadlineFetcher, predictor Predictor) *Handler {
	return &Handler{headlines: headlines, predictor: predictor}
}

type errorResponse struct {
	Message string `json:"message"`
}

// statusFor maps an error kind to the HTTP status returned to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUpstreamUnavailable), errors.Is(err, models.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) GetNews(c *gin.Context) {
	set, err := h.headlines.Fetch(c.Request.Context())
	if err != nil {
		slog.Error("[HTTP] Failed to fetch headlines", slog.String("error", err.Error()))
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrMissingCredential) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, errorResponse{Message: "Failed to fetch news headlines"})
		return
	}

	c.JSON(http.StatusOK, set)
}

// predictionMessage is the client-facing text for a failed prediction. The
// wrapped error chain stays in the logs.
func predictionMessage(err error, symbol string) string {
	subject := "the market"
	if symbol != "" {
		subject = symbol
	}

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return "Provide exactly one of stockSymbol or marketNews"
	case errors.Is(err, models.ErrMissingCredential):
		return "Prediction service is not configured"
	case errors.Is(err, models.ErrNoData):
		return fmt.Sprintf("Failed to retrieve stock data for %s", symbol)
	case errors.Is(err, models.ErrMalformedResponse):
		return fmt.Sprintf("Prediction model returned an invalid response for %s", subject)
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return fmt.Sprintf("Prediction model is unavailable for %s", subject)
	default:
		return fmt.Sprintf("Failed to generate prediction for %s", subject)
	}
}

func (h *Handler) PostPredict(c *gin.Context) {
	var input models.PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Request body must be a JSON object with stockSymbol or marketNews"})
		return
	}

	c.Header(PredictionModelHeader, h.predictor.ModelName())

	result, err := h.predictor.Predict(c.Request.Context(), input)
	if err != nil {
		symbol := strings.ToUpper(strings.TrimSpace(input.StockSymbol))
		slog.Error("[HTTP] Prediction failed",
			slog.String("symbol", symbol),
			slog.String("request_id", c.GetString(RequestIDContextKey)),
			slog.String("error", err.Error()))
		c.JSON(statusFor(err), errorResponse{Message: predictionMessage(err, symbol)})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetTopGainers(c *gin.Context) {
	c.JSON(http.StatusOK, stocks.TopGainers(getQueryInt("limit", stocks.DEFAULT_LIMIT, c)))
}

func (h *Handler) GetTopLosers(c *gin.Context) {
	c.JSON(http.StatusOK, stocks.TopLosers(getQueryInt("limit", stocks.DEFAULT_LIMIT, c)))
}

func (h *Handler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, stocks.HistoricalData(c.Param("symbol"), c.DefaultQuery("period", "1mo")))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[HTTP] Invalid query parameter, using default",
			slog.String("param", name), slog.String("value", raw))
		return defaultValue
	}
	return v
}
