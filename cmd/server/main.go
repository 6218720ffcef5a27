package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacesedan/stocksage/config"
	"github.com/spacesedan/stocksage/internal/cache"
	"github.com/spacesedan/stocksage/internal/clients"
	"github.com/spacesedan/stocksage/internal/clients/kafka_client"
	"github.com/spacesedan/stocksage/internal/db"
	"github.com/spacesedan/stocksage/internal/headlines"
	"github.com/spacesedan/stocksage/internal/logging"
	"github.com/spacesedan/stocksage/internal/prediction"
	"github.com/spacesedan/stocksage/internal/sentiment"
	"github.com/spacesedan/stocksage/internal/server"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Server] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	headlineCache, closeCache := newHeadlineCache(ctx, cfg)
	defer closeCache()

	newsAPI := clients.NewNewsAPIClient(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, cfg.NewsAPIMaxRetries, httpClient)
	headlineService := headlines.NewService(newsAPI, headlineCache, cfg.HeadlineCacheTTL)

	var publisher prediction.EventPublisher
	if cfg.KafkaBroker != "" {
		producer, err := kafka_client.NewProducer(kafka_client.KafkaConfig{
			Broker: cfg.KafkaBroker,
			Topic:  cfg.KafkaPredictionTopic,
		})
		if err != nil {
			slog.Warn("[Server] Prediction events disabled", slog.String("error", err.Error()))
		} else {
			defer producer.Close()
			publisher = producer
		}
	}

	flow := prediction.NewFlow(newMarketDataProvider(cfg, httpClient), newModel(cfg), publisher, cfg.PredictionLanguage)

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.NewHandler(headlineService, flow), cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("[Server] Listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Server] HTTP server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Server] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Server] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func newMarketDataProvider(cfg *config.Config, httpClient *http.Client) prediction.MarketDataProvider {
	if cfg.FinancialProvider == config.FinancialProviderFinnhub {
		slog.Info("[Server] Using Finnhub market data")
		return clients.NewFinnhubClient(cfg.FinnhubAPIKey, cfg.FinnhubAPIBaseURL, httpClient)
	}
	slog.Info("[Server] Using Financial Modeling Prep market data")
	return clients.NewFMPClient(cfg.FinancialAPIKey, cfg.FinancialAPIBaseURL, httpClient)
}

func newModel(cfg *config.Config) prediction.Model {
	provider := cfg.EffectiveLLMProvider()
	if provider != cfg.LLMProvider {
		slog.Warn("[Server] No API key for LLM provider, falling back to offline sentiment model",
			slog.String("provider", cfg.LLMProvider))
	}

	switch provider {
	case config.LLMProviderOpenAI:
		return clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout)
	case config.LLMProviderAnthropic:
		return clients.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		return sentiment.NewModel()
	}
}

// newHeadlineCache picks the configured backend. A backend that cannot be
// reached falls back to the in-memory cache.
func newHeadlineCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	noop := func() {}

	switch cfg.HeadlineCacheBackend {
	case config.CacheBackendValkey:
		vc, err := clients.NewValkeyClient(clients.ValkeyConfig{
			Address:  cfg.ValkeyAddress,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
		})
		if err == nil {
			return vc, vc.Close
		}
		slog.Warn("[Server] Valkey unavailable, using in-memory headline cache",
			slog.String("error", err.Error()))
	case config.CacheBackendDynamoDB:
		awsCfg, err := clients.LoadAWSConfig(ctx, clients.AWSConfig{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.AWSEndpoint,
		})
		if err == nil {
			dynamo := clients.NewDynamoDBClient(awsCfg, cfg.AWSEndpoint)
			return db.NewCacheTable(dynamo, cfg.HeadlineCacheTable), noop
		}
		slog.Warn("[Server] AWS config unavailable, using in-memory headline cache",
			slog.String("error", err.Error()))
	}

	return cache.NewMemory(cache.SystemClock), noop
}
