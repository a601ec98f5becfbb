package api

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "trackspring_client",
		Name:      "requests_total",
		Help:      "How many API requests were sent, partitioned by status code, HTTP method and endpoint.",
	},
	[]string{"code", "method", "endpoint"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "trackspring_client",
		Name:      "request_duration_seconds",
		Help:      "The API request latencies in seconds.",
	},
	[]string{"code", "method", "endpoint"},
)

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
}

// RegisterMetrics registers the client metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range metrics {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// UnregisterMetrics removes the client metrics from reg.
func UnregisterMetrics(reg prometheus.Registerer) bool {
	for _, c := range metrics {
		if ok := reg.Unregister(c); !ok {
			return false
		}
	}

	return true
}

var numericSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

// endpoint replaces numeric ids in the path to reduce label cardinality.
func endpoint(path string) string {
	// Replace twice to catch adjacent numeric segments
	for i := 0; i < 2; i++ {
		path = numericSegment.ReplaceAllString(path, "/:id$1")
	}
	return path
}

func observe(method, path string, status int, started time.Time) {
	code := strconv.Itoa(status)
	ep := endpoint(path)
	elapsed := float64(time.Since(started)) / float64(time.Second)

	requestDuration.WithLabelValues(code, method, ep).Observe(elapsed)
	requestCount.WithLabelValues(code, method, ep).Inc()
}
