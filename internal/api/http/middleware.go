package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

type contextKey int

const requestIDKey contextKey = iota

// Middleware decorates handler func.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain applies middlewares so that the first one is the outermost.
func Chain(h http.HandlerFunc, mws ...Middleware) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// NewTimeoutMiddleware creates middleware that cancels requests context after given time.
func NewTimeoutMiddleware(timeout time.Duration) Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)
			h(w, r)
		}
	}
}

// NewRequestIDMiddleware creates middleware that tags every request with an id.
// Id sent by the client in X-Request-Id header is reused, otherwise new uuid is generated.
func NewRequestIDMiddleware() Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))
			h(w, r)
		}
	}
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// NewLoggingMiddleware creates middleware logging every handled request.
func NewLoggingMiddleware(l logrus.FieldLogger) Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			h(sw, r)

			l.WithFields(logrus.Fields{
				"requestID": requestID(r),
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    sw.Status(),
				"duration":  time.Since(start).String(),
			}).Info("request handled")
		}
	}
}

// Metrics collects http request metrics.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates Metrics registering its collectors in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	auto := promauto.With(reg)

	return &Metrics{
		requests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ghreputation",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of handled http requests",
		}, []string{"route", "code"}),
		duration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ghreputation",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Http request handling latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Middleware creates middleware recording metrics under given route label.
func (m *Metrics) Middleware(route string) Middleware {
	return func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			h(sw, r)

			m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(route, strconv.Itoa(sw.Status())).Inc()
		}
	}
}

// statusWriter remembers response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
