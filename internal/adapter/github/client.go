package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-zajac/ghreputation/internal/app"
)

const userAgent = "ghreputation"

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client returns public details about github accounts.
// This struct is an adapter for app.GithubClient.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string
	timeout   time.Duration

	accountResponseMaxSize int
	listResponseMaxSize    int
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// authToken is optional. timeout limits every single api call, zero means no limit.
func NewClient(doer HTTPDoer, address string, authToken string, timeout time.Duration) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,
		timeout:   timeout,

		accountResponseMaxSize: 1024 * 1024,
		listResponseMaxSize:    1024 * 1024 * 10,
	}

	return &c
}

// Account returns core account attributes.
func (c *Client) Account(ctx context.Context, login string) (*app.Account, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}

	var resp accountResponse
	if err := c.get(ctx, login, "/users/"+url.PathEscape(login), nil, c.accountResponseMaxSize, &resp); err != nil {
		return nil, err
	}

	account := resp.ToAccount()
	return &account, nil
}

// Repositories returns up to count most recently updated repositories of the account.
func (c *Client) Repositories(ctx context.Context, login string, count int) ([]app.Repository, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}
	if count < 1 || count > 100 {
		return nil, app.InvalidRequestError("count must be in range <1..100>")
	}

	v := make(url.Values)
	v.Set("sort", "updated")
	v.Set("per_page", strconv.Itoa(count))

	var resp reposResponse
	if err := c.get(ctx, login, "/users/"+url.PathEscape(login)+"/repos", v, c.listResponseMaxSize, &resp); err != nil {
		return nil, err
	}

	return resp.ToRepositories(), nil
}

// Events returns up to count most recent public events of the account.
func (c *Client) Events(ctx context.Context, login string, count int) ([]app.Event, error) {
	if login == "" {
		return nil, app.InvalidRequestError("login cannot be empty")
	}
	if count < 1 || count > 100 {
		return nil, app.InvalidRequestError("count must be in range <1..100>")
	}

	v := make(url.Values)
	v.Set("per_page", strconv.Itoa(count))

	var resp eventsResponse
	if err := c.get(ctx, login, "/users/"+url.PathEscape(login)+"/events/public", v, c.listResponseMaxSize, &resp); err != nil {
		return nil, err
	}

	return resp.ToEvents(), nil
}

func (c *Client) get(ctx context.Context, login string, path string, query url.Values, maxBytes int, target interface{}) error {
	u, err := url.Parse(c.address + path)
	if err != nil {
		return &app.FetchFailedError{Op: "parsing url", Err: err}
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return &app.FetchFailedError{Op: "creating http request", Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.authToken != "" {
		req.Header.Set("Authorization", "token "+c.authToken)
	}

	body, err := makeRequest(ctx, c.doer, req, c.timeout, maxBytes, login)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return &app.FetchFailedError{Op: "unmarshalling " + path + " response", Err: err}
	}

	return nil
}

// makeRequest executes request with given timeout and maps failed responses to app errors.
func makeRequest(ctx context.Context, doer HTTPDoer, req *http.Request, timeout time.Duration, maxBytes int, login string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	op := req.Method + " " + req.URL.Path

	resp, err := doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &app.FetchFailedError{Op: op, Err: err}
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(ioutil.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	if err := statusError(resp, op, login); err != nil {
		return nil, err
	}

	b, err := ioutil.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)+1))
	if err != nil {
		return nil, &app.FetchFailedError{Op: op, Err: fmt.Errorf("reading http response body: %w", err)}
	}
	if len(b) > maxBytes {
		return nil, &app.FetchFailedError{Op: op, Err: errors.New("response body too large")}
	}

	return b, nil
}

func statusError(resp *http.Response, op string, login string) error {
	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return app.NotFoundError(fmt.Sprintf("github user '%s' not found", login))
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusForbidden:
		// Secondary rate limits respond with 403 even when primary quota is left.
		return app.RateLimitedError{
			Message: "github api rate limit exceeded",
			ResetAt: rateLimitReset(resp.Header, time.Now()),
		}
	case resp.StatusCode >= 500:
		return app.UpstreamUnavailableError(fmt.Sprintf("upstream api is currently unavailable (status %d)", resp.StatusCode))
	}

	return &app.FetchFailedError{Op: op, Err: fmt.Errorf("got invalid http status code: %d", resp.StatusCode)}
}

// rateLimitReset reads reset time from X-RateLimit-Reset, falling back to Retry-After seconds counted from now.
// Zero time means reset time is unknown.
func rateLimitReset(h http.Header, now time.Time) time.Time {
	if ts, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC()
	}
	if secs, err := strconv.Atoi(h.Get("Retry-After")); err == nil && secs >= 0 {
		return now.Add(time.Duration(secs) * time.Second).UTC()
	}
	return time.Time{}
}
