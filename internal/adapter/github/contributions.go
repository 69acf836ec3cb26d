package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/m-zajac/ghreputation/internal/app"
)

// ContributionsClient returns yearly contribution totals from contributions aggregation api.
// This struct is an adapter for app.ContributionsClient.
type ContributionsClient struct {
	doer    HTTPDoer
	address string
	timeout time.Duration

	responseMaxSize int
}

var _ app.ContributionsClient = &ContributionsClient{}

// NewContributionsClient creates new ContributionsClient.
func NewContributionsClient(doer HTTPDoer, address string, timeout time.Duration) *ContributionsClient {
	return &ContributionsClient{
		doer:            doer,
		address:         address,
		timeout:         timeout,
		responseMaxSize: 1024 * 1024 * 5,
	}
}

// Contributions returns all-time yearly contribution totals.
func (c *ContributionsClient) Contributions(ctx context.Context, login string) (app.ContributionHistory, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	u, err := url.Parse(c.address + "/v4/" + url.PathEscape(login))
	if err != nil {
		return nil, &app.FetchFailedError{Op: "parsing url", Err: err}
	}
	v := make(url.Values)
	v.Set("y", "all")
	u.RawQuery = v.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &app.FetchFailedError{Op: "creating http request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	body, err := makeRequest(ctx, c.doer, req, c.timeout, c.responseMaxSize, login)
	if err != nil {
		return nil, err
	}

	var resp contributionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &app.FetchFailedError{Op: "unmarshalling contributions response", Err: err}
	}

	return resp.ToHistory(), nil
}
