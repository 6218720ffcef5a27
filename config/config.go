package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	FinancialProviderFMP     = "fmp"
	FinancialProviderFinnhub = "finnhub"

	LLMProviderOpenAI    = "openai"
	LLMProviderAnthropic = "anthropic"
	LLMProviderVader     = "vader"

	CacheBackendMemory   = "memory"
	CacheBackendValkey   = "valkey"
	CacheBackendDynamoDB = "dynamodb"
)

type Config struct {
	Port     string
	LogLevel string

	FinancialProvider   string
	FinancialAPIKey     string
	FinancialAPIBaseURL string
	FinnhubAPIKey       string
	FinnhubAPIBaseURL   string

	NewsAPIKey        string
	NewsAPIBaseURL    string
	NewsAPIMaxRetries int

	LLMProvider        string
	OpenAIAPIKey       string
	OpenAIModel        string
	AnthropicAPIKey    string
	AnthropicModel     string
	LLMTimeout         time.Duration
	PredictionLanguage string

	HeadlineCacheBackend string
	HeadlineCacheTTL     time.Duration
	HeadlineCacheTable   string

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool

	AWSEndpoint string
	AWSRegion   string

	KafkaBroker          string
	KafkaPredictionTopic string

	FrontendURL string
	HTTPTimeout time.Duration
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key), slog.String("value", raw))
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		// bare integers are read as seconds
		secs, convErr := strconv.Atoi(raw)
		if convErr != nil {
			slog.Warn("[Config] Invalid duration, using default",
				slog.String("key", key), slog.String("value", raw))
			return defaultValue
		}
		return time.Duration(secs) * time.Second
	}
	return d
}

// Load reads the service configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		FinancialProvider:   strings.ToLower(getEnv("FINANCIAL_PROVIDER", FinancialProviderFMP)),
		FinancialAPIKey:     os.Getenv("FINANCIAL_API_KEY"),
		FinancialAPIBaseURL: getEnv("FINANCIAL_API_BASE_URL", "https://financialmodelingprep.com"),
		FinnhubAPIKey:       os.Getenv("FINNHUB_API_KEY"),
		FinnhubAPIBaseURL:   os.Getenv("FINNHUB_API_BASE_URL"),

		NewsAPIKey:        os.Getenv("NEWS_API_KEY"),
		NewsAPIBaseURL:    getEnv("NEWS_API_BASE_URL", "https://newsapi.org"),
		NewsAPIMaxRetries: getEnvInt("NEWS_API_MAX_RETRIES", 1),

		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderOpenAI)),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		LLMTimeout:         getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		PredictionLanguage: getEnv("PREDICTION_LANGUAGE", "English"),

		HeadlineCacheBackend: strings.ToLower(getEnv("HEADLINE_CACHE_BACKEND", CacheBackendMemory)),
		HeadlineCacheTTL:     getEnvDuration("HEADLINE_CACHE_TTL", 60*time.Second),
		HeadlineCacheTable:   getEnv("HEADLINE_CACHE_TABLE", "HeadlineCache"),

		ValkeyAddress:  getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:      os.Getenv("VALKEY_TLS") == "true",

		AWSEndpoint: os.Getenv("AWS_ENDPOINT"),
		AWSRegion:   getEnv("AWS_REGION", "us-west-2"),

		KafkaBroker:          os.Getenv("KAFKA_BROKER"),
		KafkaPredictionTopic: getEnv("KAFKA_PREDICTION_TOPIC", "market-predictions"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown provider and backend names. Missing API keys are
// not a startup error: the affected request fails with a credential error.
func (c *Config) Validate() error {
	switch c.FinancialProvider {
	case FinancialProviderFMP, FinancialProviderFinnhub:
	default:
		return fmt.Errorf("[Config] unknown FINANCIAL_PROVIDER %q", c.FinancialProvider)
	}

	switch c.LLMProvider {
	case LLMProviderOpenAI, LLMProviderAnthropic, LLMProviderVader:
	default:
		return fmt.Errorf("[Config] unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.HeadlineCacheBackend {
	case CacheBackendMemory, CacheBackendValkey, CacheBackendDynamoDB:
	default:
		return fmt.Errorf("[Config] unknown HEADLINE_CACHE_BACKEND %q", c.HeadlineCacheBackend)
	}

	if c.HeadlineCacheTTL < 0 {
		return fmt.Errorf("[Config] HEADLINE_CACHE_TTL must not be negative")
	}
	if c.NewsAPIMaxRetries < 1 {
		return fmt.Errorf("[Config] NEWS_API_MAX_RETRIES must be at least 1")
	}
	return nil
}

// EffectiveLLMProvider falls back to the offline VADER model when the
// configured provider has no API key.
func (c *Config) EffectiveLLMProvider() string {
	switch c.LLMProvider {
	case LLMProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return LLMProviderVader
		}
	case LLMProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return LLMProviderVader
		}
	}
	return c.LLMProvider
}

func (c *Config) AllowedOrigins() []string {
	origins := []string{"http://localhost:3000", "http://localhost:9002"}
	if c.FrontendURL != "" {
		origins = append(origins, c.FrontendURL)
	}
	return origins
}
