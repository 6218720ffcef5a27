package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeNoData  = "no_data"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stocksage",
		Name:      "upstream_requests_total",
		Help:      "Requests made to external data and model providers.",
	}, []string{"provider", "outcome"})

	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stocksage",
		Name:      "predictions_total",
		Help:      "Market trend predictions by input variant and outcome.",
	}, []string{"variant", "outcome"})

	HeadlineCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stocksage",
		Name:      "headline_cache_lookups_total",
		Help:      "Headline cache lookups by result.",
	}, []string{"result"})
)

func RecordUpstream(provider string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
}
