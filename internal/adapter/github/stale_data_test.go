package github

import (
	"context"
	"errors"
	"io/ioutil"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/ghreputation/internal/adapter/github/mock"
	"github.com/m-zajac/ghreputation/internal/app"
	appmock "github.com/m-zajac/ghreputation/internal/app/mock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributionsWithStaleData(t *testing.T) {
	t.Parallel()

	history := app.ContributionHistory{"2023": 120, "2024": 310}
	upstreamErr := app.UpstreamUnavailableError("down")

	tests := []struct {
		name        string
		age         time.Duration
		firstErr    error
		secondErr   error
		want        app.ContributionHistory
		wantErrKind func(error) bool
	}{
		{
			name: "upstream ok both times",
			age:  time.Minute,
			want: history,
		},
		{
			name:      "upstream failed, saved data is fresh",
			age:       time.Minute,
			secondErr: upstreamErr,
			want:      history,
		},
		{
			name:        "upstream failed, saved data is too old",
			age:         2 * time.Hour,
			secondErr:   upstreamErr,
			wantErrKind: app.IsUpstreamUnavailableError,
		},
		{
			name:        "upstream failed, nothing saved",
			age:         time.Minute,
			firstErr:    app.RateLimitedError{Message: "limited"},
			secondErr:   app.RateLimitedError{Message: "limited"},
			wantErrKind: app.IsRateLimitedError,
		},
		{
			name:        "not found is never masked",
			age:         time.Minute,
			secondErr:   app.NotFoundError("gone"),
			wantErrKind: app.IsNotFoundError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := appmock.NewMockContributionsClient(ctrl)
			first := client.EXPECT().Contributions(gomock.Any(), "octocat")
			if tt.firstErr != nil {
				first.Return(nil, tt.firstErr)
			} else {
				first.Return(history, nil)
			}
			second := client.EXPECT().Contributions(gomock.Any(), "octocat").After(first)
			if tt.secondErr != nil {
				second.Return(nil, tt.secondErr)
			} else {
				second.Return(history, nil)
			}

			store := mock.NewKVStore(nil)
			c := NewContributionsWithStaleData(client, store, time.Hour, newTestLogger())
			clock := newFakeClock()
			c.now = clock.Now

			_, _ = c.Contributions(context.Background(), "octocat")
			clock.Advance(tt.age)

			got, err := c.Contributions(context.Background(), "octocat")
			if tt.wantErrKind != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErrKind(err), "unexpected error kind: %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContributionsWithStaleDataStoreFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := app.ContributionHistory{"2024": 1}

	client := appmock.NewMockContributionsClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Contributions(gomock.Any(), "octocat").Return(history, nil),
		client.EXPECT().Contributions(gomock.Any(), "octocat").Return(nil, app.UpstreamUnavailableError("down")),
	)

	store := mock.NewKVStore(nil)
	store.UpdateErr = errors.New("disk full")
	store.ReadErr = errors.New("disk broken")
	c := NewContributionsWithStaleData(client, store, time.Hour, newTestLogger())

	got, err := c.Contributions(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, history, got)
	assert.Equal(t, 1, store.Updates())

	_, err = c.Contributions(context.Background(), "octocat")
	require.Error(t, err)
	assert.True(t, app.IsUpstreamUnavailableError(err))
	assert.Equal(t, 1, store.Reads())
}

func TestContributionsWithStaleDataKeyIgnoresCase(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := app.ContributionHistory{"2024": 7}

	client := appmock.NewMockContributionsClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Contributions(gomock.Any(), "OctoCat").Return(history, nil),
		client.EXPECT().Contributions(gomock.Any(), "octocat").Return(nil, errors.New("boom")),
	)

	store := mock.NewKVStore(nil)
	c := NewContributionsWithStaleData(client, store, time.Hour, newTestLogger())

	_, err := c.Contributions(context.Background(), "OctoCat")
	require.NoError(t, err)

	got, err := c.Contributions(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, history, got)
}

func newTestLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}
