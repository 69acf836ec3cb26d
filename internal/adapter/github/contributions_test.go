package github

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/m-zajac/ghreputation/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributionsClient_Contributions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doer    *mock.HTTPDoer
		login   string
		want    app.ContributionHistory
		wantErr func(error) bool
	}{
		{
			name:    "empty login",
			login:   "",
			wantErr: app.IsInvalidRequestError,
		},
		{
			name: "status ok, body ok",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusOK},
				Bodies: [][]byte{
					[]byte(`{"total":{"2021":50,"2022":310,"2023":0},"contributions":[]}`),
				},
			},
			login: "octocat",
			want:  app.ContributionHistory{"2021": 50, "2022": 310, "2023": 0},
		},
		{
			name: "unknown user",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusNotFound},
			},
			login:   "ghost",
			wantErr: app.IsNotFoundError,
		},
		{
			name: "server error",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusServiceUnavailable},
			},
			login:   "octocat",
			wantErr: app.IsUpstreamUnavailableError,
		},
		{
			name: "invalid json",
			doer: &mock.HTTPDoer{
				Statuses: []int{http.StatusOK},
				Bodies:   [][]byte{[]byte(`<html>`)},
			},
			login:   "octocat",
			wantErr: app.IsFetchFailedError,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewContributionsClient(tt.doer, "https://contributions.fake", time.Second)
			got, err := c.Contributions(context.Background(), tt.login)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error kind: %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)

			if tt.doer == nil {
				return
			}

			require.Len(t, tt.doer.Requests, 1)
			req := tt.doer.Requests[0]
			assert.Equal(t, "contributions.fake", req.URL.Host)
			assert.Equal(t, "/v4/"+tt.login, req.URL.Path)
			assert.Equal(t, "all", req.URL.Query().Get("y"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
		})
	}
}
