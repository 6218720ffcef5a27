package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/spacesedan/stocksage/internal/cache"
	"github.com/spacesedan/stocksage/internal/models"
	"github.com/spacesedan/stocksage/internal/monitoring"
)

const (
	CACHE_KEY   = "stocksage:headlines:us-business"
	DEFAULT_TTL = 60 * time.Second
)

type Source interface {
	GetTopHeadlines(ctx context.Context) (*models.NewsAPITopHeadlinesResponse, error)
}

// Service serves the global headline feed through a TTL cache. Concurrent
// misses are not coalesced.
type Service struct {
	source Source
	cache  cache.Cache
	ttl    time.Duration
}

// NewService builds the service. A nil cache or a zero ttl disables caching.
func NewService(source Source, c cache.Cache, ttl time.Duration) *Service {
	return &Service{source: source, cache: c, ttl: ttl}
}

// Fetch returns the normalized headlines. Upstream failures propagate;
// cache failures are logged and treated as misses.
func (s *Service) Fetch(ctx context.Context) (*models.HeadlineSet, error) {
	if set, ok := s.cached(ctx); ok {
		return set, nil
	}

	res, err := s.source.GetTopHeadlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("[HeadlineService] failed to fetch headlines: %w", err)
	}

	set := BuildHeadlineSet(res.Articles)
	s.store(ctx, set)
	return set, nil
}

func (s *Service) caching() bool {
	return s.cache != nil && s.ttl > 0
}

func (s *Service) cached(ctx context.Context) (*models.HeadlineSet, bool) {
	if !s.caching() {
		return nil, false
	}

	raw, ok, err := s.cache.Get(ctx, CACHE_KEY)
	if err != nil {
		slog.Warn("[HeadlineService] Cache lookup failed, refetching",
			slog.String("error", err.Error()))
		monitoring.HeadlineCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}
	if !ok {
		monitoring.HeadlineCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var set models.HeadlineSet
	if err := json.Unmarshal(raw, &set); err != nil {
		slog.Warn("[HeadlineService] Discarding undecodable cache entry",
			slog.String("error", err.Error()))
		monitoring.HeadlineCacheLookups.WithLabelValues("error").Inc()
		return nil, false
	}

	monitoring.HeadlineCacheLookups.WithLabelValues("hit").Inc()
	return &set, true
}

func (s *Service) store(ctx context.Context, set *models.HeadlineSet) {
	if !s.caching() {
		return
	}

	raw, err := json.Marshal(set)
	if err != nil {
		slog.Warn("[HeadlineService] Failed to encode headlines", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Set(ctx, CACHE_KEY, raw, s.ttl); err != nil {
		slog.Warn("[HeadlineService] Failed to cache headlines", slog.String("error", err.Error()))
	}
}

// BuildHeadlineSet normalizes articles and collects their image hostnames.
func BuildHeadlineSet(articles []models.NewsAPIArticle) *models.HeadlineSet {
	items := make([]models.NewsItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, models.NormalizeNewsAPIArticle(a))
	}
	return &models.HeadlineSet{
		NewsHeadlines: items,
		Hostnames:     ExtractHostnames(items),
	}
}

// ExtractHostnames returns the sorted distinct hosts of every non-null
// urlToImage. URLs without a host are skipped.
func ExtractHostnames(items []models.NewsItem) []string {
	seen := make(map[string]struct{})
	hostnames := []string{}

	for _, item := range items {
		if item.URLToImage == nil {
			continue
		}
		u, err := url.Parse(*item.URLToImage)
		if err != nil || u.Hostname() == "" {
			slog.Debug("[HeadlineService] Skipping unparsable image url",
				slog.String("url", *item.URLToImage))
			continue
		}
		host := u.Hostname()
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		hostnames = append(hostnames, host)
	}

	sort.Strings(hostnames)
	return hostnames
}
