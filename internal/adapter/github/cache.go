package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/ghreputation/internal/app"
)

// CachedClient wraps github client with caching layer.
// Failed calls are never cached.
type CachedClient struct {
	client        app.GithubClient
	accountsCache *lru.Cache
	reposCache    *lru.Cache
	eventsCache   *lru.Cache
	ttl           time.Duration

	now func() time.Time
}

var _ app.GithubClient = &CachedClient{}

// NewCachedClient creates new CachedClient instance.
func NewCachedClient(client app.GithubClient, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	accountsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for accounts: %w", err)
	}
	reposCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for repositories: %w", err)
	}
	eventsCache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache for events: %w", err)
	}

	return &CachedClient{
		client:        client,
		accountsCache: accountsCache,
		reposCache:    reposCache,
		eventsCache:   eventsCache,
		ttl:           ttl,
		now:           time.Now,
	}, nil
}

// Account returns core account attributes.
func (c *CachedClient) Account(ctx context.Context, login string) (*app.Account, error) {
	key := cacheKey(login)
	if val, ok := c.accountsCache.Get(key); ok {
		entry := val.(accountCacheEntry)
		if c.fresh(entry.created) {
			account := entry.data
			return &account, nil
		}
	}

	account, err := c.client.Account(ctx, login)
	if err != nil {
		return account, err
	}

	c.accountsCache.Add(key, accountCacheEntry{
		created: c.now(),
		data:    *account,
	})

	return account, nil
}

// Repositories returns up to count most recently updated repositories.
// Cached entry is reused only if it was fetched with at least the same count.
func (c *CachedClient) Repositories(ctx context.Context, login string, count int) ([]app.Repository, error) {
	key := cacheKey(login)
	if val, ok := c.reposCache.Get(key); ok {
		entry := val.(reposCacheEntry)
		if entry.count >= count && c.fresh(entry.created) {
			repos := entry.data
			if len(repos) > count {
				repos = repos[:count]
			}
			return repos, nil
		}
	}

	repos, err := c.client.Repositories(ctx, login, count)
	if err != nil {
		return repos, err
	}

	c.reposCache.Add(key, reposCacheEntry{
		created: c.now(),
		count:   count,
		data:    repos,
	})

	return repos, nil
}

// Events returns up to count most recent public events.
func (c *CachedClient) Events(ctx context.Context, login string, count int) ([]app.Event, error) {
	key := cacheKey(login)
	if val, ok := c.eventsCache.Get(key); ok {
		entry := val.(eventsCacheEntry)
		if entry.count >= count && c.fresh(entry.created) {
			events := entry.data
			if len(events) > count {
				events = events[:count]
			}
			return events, nil
		}
	}

	events, err := c.client.Events(ctx, login, count)
	if err != nil {
		return events, err
	}

	c.eventsCache.Add(key, eventsCacheEntry{
		created: c.now(),
		count:   count,
		data:    events,
	})

	return events, nil
}

func (c *CachedClient) fresh(created time.Time) bool {
	return created.Add(c.ttl).After(c.now())
}

// GitHub logins are case insensitive.
func cacheKey(login string) string {
	return strings.ToLower(login)
}

type accountCacheEntry struct {
	created time.Time
	data    app.Account
}

type reposCacheEntry struct {
	created time.Time
	count   int
	data    []app.Repository
}

type eventsCacheEntry struct {
	created time.Time
	count   int
	data    []app.Event
}
