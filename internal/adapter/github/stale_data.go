package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/sirupsen/logrus"
)

var dbCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// KVStore provides simple kv data storage
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
}

// ContributionsWithStaleData wraps ContributionsClient and keeps last known history of every login in db.
//
// Every successful upstream response is saved.
// If upstream call fails and saved history is younger than ttl, saved history is returned instead of the error.
// Otherwise upstream error is returned.
type ContributionsWithStaleData struct {
	client app.ContributionsClient
	store  KVStore
	ttl    time.Duration
	l      logrus.FieldLogger

	now func() time.Time
}

var _ app.ContributionsClient = &ContributionsWithStaleData{}

// NewContributionsWithStaleData creates new ContributionsWithStaleData instance.
func NewContributionsWithStaleData(
	client app.ContributionsClient,
	store KVStore,
	ttl time.Duration,
	l logrus.FieldLogger,
) *ContributionsWithStaleData {
	return &ContributionsWithStaleData{
		client: client,
		store:  store,
		ttl:    ttl,
		l:      l.WithField("component", "staleContributions"),
		now:    time.Now,
	}
}

// Contributions returns yearly contribution totals.
//
// Returns data from db if upstream fails.
func (c *ContributionsWithStaleData) Contributions(ctx context.Context, login string) (app.ContributionHistory, error) {
	history, err := c.client.Contributions(ctx, login)
	if err == nil {
		if err := c.save(login, history); err != nil {
			c.l.WithField("login", login).Errorf("saving contributions: %v", err)
		}
		return history, nil
	}
	if app.IsInvalidRequestError(err) || app.IsNotFoundError(err) {
		return nil, err
	}

	entry, readErr := c.read(login)
	if readErr != nil {
		c.l.WithField("login", login).Errorf("reading saved contributions: %v", readErr)
		return nil, err
	}
	if entry == nil {
		return nil, err
	}
	created := time.Unix(entry.Created, 0)
	if !created.Add(c.ttl).After(c.now()) {
		return nil, err
	}

	c.l.WithFields(logrus.Fields{
		"login": login,
		"age":   c.now().Sub(created).Round(time.Second).String(),
	}).Warnf("upstream failed, serving saved contributions: %v", err)

	return entry.Data, nil
}

func (c *ContributionsWithStaleData) save(login string, history app.ContributionHistory) error {
	dbdata, err := dbCodec.Marshal(contributionsDBEntry{
		Created: c.now().Unix(),
		Data:    history,
	})
	if err != nil {
		return fmt.Errorf("serializing data for save: %w", err)
	}

	return c.store.UpdateKey(contributionsDBKey(login), dbdata)
}

func (c *ContributionsWithStaleData) read(login string) (*contributionsDBEntry, error) {
	data, err := c.store.ReadKey(contributionsDBKey(login))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var entry contributionsDBEntry
	if err := dbCodec.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("unserializing contributions data: %w", err)
	}

	return &entry, nil
}

func contributionsDBKey(login string) []byte {
	return []byte("ct/" + strings.ToLower(login))
}

type contributionsDBEntry struct {
	Created int64
	Data    app.ContributionHistory
}
