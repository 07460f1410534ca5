package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WritesAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxboard", Name: "writes_accepted_total", Help: "Number of committed board writes by action."},
		[]string{"action"},
	)
	WritesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxboard", Name: "writes_rejected_total", Help: "Number of rejected board writes by action and reason."},
		[]string{"action", "reason"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxboard", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "taxboard", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(WritesAccepted)
	reg.MustRegister(WritesRejected)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
