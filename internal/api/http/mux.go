package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mock/service.go -package=mock github.com/m-zajac/ghreputation/internal/api/http Service

// Service can aggregate github profiles and score them.
type Service interface {
	Profile(ctx context.Context, login string) (*app.Profile, error)
	Reputation(ctx context.Context, login string) (*app.Reputation, error)
}

// NewMux creates router for app's http server.
// Metrics are registered in and exposed from reg.
func NewMux(service Service, timeout time.Duration, l logrus.FieldLogger, reg *prometheus.Registry) *http.ServeMux {
	l = l.WithField("component", "httpServer")
	metrics := NewMetrics(reg)
	common := []Middleware{
		NewRequestIDMiddleware(),
		NewLoggingMiddleware(l),
	}

	profilePath := "/profile/"
	profileHandler := NewProfileHandler(pathParam(profilePath), service, l)
	profileHandler = Chain(profileHandler, append(common, metrics.Middleware("profile"), NewTimeoutMiddleware(timeout))...)

	reputationPath := "/reputation/"
	reputationHandler := NewReputationHandler(pathParam(reputationPath), service, l)
	reputationHandler = Chain(reputationHandler, append(common, metrics.Middleware("reputation"), NewTimeoutMiddleware(timeout))...)

	m := http.NewServeMux()
	m.HandleFunc(profilePath, profileHandler)
	m.HandleFunc(reputationPath, reputationHandler)
	m.HandleFunc("/healthz", NewHealthHandler())
	m.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return m
}

func pathParam(prefix string) func(*http.Request) string {
	return func(r *http.Request) string {
		return strings.TrimPrefix(r.URL.Path, prefix)
	}
}
