package clients

import "time"

const (
	FMP_BASE_URL      = "https://financialmodelingprep.com"
	NEWS_API_BASE_URL = "https://newsapi.org"

	MAX_RECENT_NEWS = 5
	INITIAL_BACKOFF = 1 * time.Second
	MAX_BACKOFF     = 32 * time.Second
	USER_AGENT      = "stocksage-client/1.0 (+https://github.com/spacesedan/stocksage)"
)
