package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// fetchOutcomes counts every outbound request by how it ended. Registered on
// the default registry so host processes that already expose /metrics pick
// these up for free.
var fetchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pyrotheus",
	Name:      "fetch_requests_total",
	Help:      "Outbound monitoring-backend requests by outcome.",
}, []string{"outcome"})
