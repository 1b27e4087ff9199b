package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// dispatchDuration tracks time spent per dispatch mode. Exposed on /metrics
// for diagnostics only.
var dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "subsonic_proxy",
	Name:      "dispatch_duration_seconds",
	Help:      "Time spent handling a request, by dispatch mode.",
	Buckets:   prometheus.DefBuckets,
}, []string{"mode"})
