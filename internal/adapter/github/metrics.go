package github

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InstrumentedDoer wraps HTTPDoer and records upstream request metrics.
type InstrumentedDoer struct {
	doer HTTPDoer

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInstrumentedDoer creates InstrumentedDoer registering its collectors in reg.
func NewInstrumentedDoer(doer HTTPDoer, reg prometheus.Registerer) *InstrumentedDoer {
	auto := promauto.With(reg)

	return &InstrumentedDoer{
		doer: doer,
		requests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ghreputation",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of upstream api requests by host and status class",
		}, []string{"host", "status"}),
		duration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ghreputation",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream api request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
	}
}

// Do executes request and records its outcome.
func (d *InstrumentedDoer) Do(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := d.doer.Do(r)
	d.duration.WithLabelValues(r.URL.Host).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = statusClass(resp.StatusCode)
	}
	d.requests.WithLabelValues(r.URL.Host, status).Inc()

	return resp, err
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
