// Package limiter throttles outgoing http calls.
package limiter

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// limitedHTTPDoer wraps HTTPDoer and allows Dos with maximum rate limit.
type limitedHTTPDoer struct {
	doer    HTTPDoer
	limiter *rate.Limiter
}

// NewHTTPDoer creates LimitedHTTPDoer instance.
// maxRate - maximum number of Dos per second, burst - number of Dos allowed at once.
// Burst lower than 1 is treated as 1.
func NewHTTPDoer(doer HTTPDoer, maxRate float64, burst int) HTTPDoer {
	if burst < 1 {
		burst = 1
	}
	return &limitedHTTPDoer{
		doer:    doer,
		limiter: rate.NewLimiter(rate.Limit(maxRate), burst),
	}
}

// Do executes http request. If limit is exceeded, blocks until call rate is within limit
// or request context is done.
func (d *limitedHTTPDoer) Do(r *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("waiting for http limiter: %w", err)
	}

	return d.doer.Do(r)
}
