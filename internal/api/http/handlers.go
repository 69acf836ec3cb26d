package http

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/sirupsen/logrus"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatText     = "text"
)

// NewProfileHandler creates handlerfunc returning aggregated profile.
// Query param "format" selects json (default), markdown or text representation.
func NewProfileHandler(
	getLogin func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = formatJSON
		}
		if format != formatJSON && format != formatMarkdown && format != formatText {
			http.Error(w, "format must be one of: json, markdown, text", http.StatusBadRequest)
			return
		}

		profile, err := service.Profile(r.Context(), getLogin(r))
		if err != nil {
			writeError(w, r, err, l)
			return
		}

		switch format {
		case formatMarkdown:
			w.Header().Set("Content-type", "text/markdown; charset=utf-8")
			_, _ = w.Write([]byte(app.RenderMarkdown(profile)))
		case formatText:
			w.Header().Set("Content-type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(app.PlainText(app.RenderMarkdown(profile))))
		default:
			writeJSON(w, profile)
		}
	}
}

// NewReputationHandler creates handlerfunc returning reputation score.
func NewReputationHandler(
	getLogin func(*http.Request) string,
	service Service,
	l logrus.FieldLogger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reputation, err := service.Reputation(r.Context(), getLogin(r))
		if err != nil {
			writeError(w, r, err, l)
			return
		}

		writeJSON(w, reputation)
	}
}

// NewHealthHandler creates handlerfunc for liveness checks.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-type", "application/json; charset=utf-8")
	_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error, l logrus.FieldLogger) {
	switch {
	case app.IsInvalidRequestError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case app.IsNotFoundError(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case app.IsRateLimitedError(err):
		if rlErr, ok := app.AsRateLimitedError(err); ok && !rlErr.ResetAt.IsZero() {
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(rlErr.ResetAt.Unix(), 10))
		}
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case app.IsUpstreamUnavailableError(err):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case app.IsFetchFailedError(err):
		l.WithField("requestID", requestID(r)).Warnf("upstream fetch failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		l.WithField("requestID", requestID(r)).Errorf("handling request: %v", err)
		http.Error(w, "", http.StatusInternalServerError)
	}
}
