package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
)

var (
	planRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_plan_requests_total",
		Help: "Trip planning requests by outcome",
	}, []string{"outcome"})
	generationTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_generation_tokens_total",
		Help: "Tokens reported by the generation service",
	}, []string{"direction"})
	generationCost = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travel_generation_cost_usd_total",
		Help: "Estimated upstream spend in USD",
	})
)

// ObserveOutcome counts a finished planning request.
func ObserveOutcome(outcome string) {
	planRequests.WithLabelValues(outcome).Inc()
}
