package app_test

import (
	"context"
	"errors"
	"io/ioutil"
	"strconv"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/ghreputation/internal/app"
	"github.com/m-zajac/ghreputation/internal/app/mock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

func TestServiceProfile(t *testing.T) {
	t.Parallel()

	created := time.Date(2015, 1, 2, 3, 4, 5, 0, time.UTC)
	account := &app.Account{
		Login:       "octocat",
		Name:        "The Octocat",
		Bio:         "bio",
		PublicRepos: 8,
		PublicGists: 2,
		Followers:   100,
		Following:   1,
		CreatedAt:   created,
		UpdatedAt:   created,
		AvatarURL:   "https://avatars/octocat",
		HTMLURL:     "https://github.com/octocat",
	}
	repos := []app.Repository{
		{Name: "a", Language: "Go", Stars: 5, Forks: 1},
		{Name: "forked", Language: "Rust", Stars: 1000, Forks: 500, Fork: true},
		{Name: "b", Language: "Ruby", Stars: 10, Forks: 2, Topics: []string{"cli"}},
		{Name: "c", Language: "Go", Stars: 5, Forks: 0},
		{Name: "d", Language: "", Stars: 1},
		{Name: "e", Language: "C", Stars: 7},
		{Name: "f", Language: "Python", Stars: 0},
		{Name: "g", Language: "Java", Stars: 2},
		{Name: "h", Language: "Haskell", Stars: 3},
	}
	events := []app.Event{
		{Type: "PushEvent", RepoName: "octocat/a", Payload: app.PushPayload{Commits: 2}},
		{Type: "WatchEvent", RepoName: "x/y", Payload: app.WatchPayload{}},
		{Type: "ForkEvent", RepoName: "x/z", Payload: app.ForkPayload{}},
		{Type: "IssuesEvent", RepoName: "octocat/b", Payload: app.IssuesPayload{Action: "opened"}},
		{Type: "CreateEvent", RepoName: "octocat/c", Payload: app.CreatePayload{RefType: "tag"}},
		{Type: "PublicEvent", RepoName: "octocat/d", Payload: app.UnknownPayload{}},
	}
	history := app.ContributionHistory{"2023": 500, "2024": 300}

	tests := []struct {
		name      string
		login     string
		setupMock func(*mock.MockGithubClient, *mock.MockContributionsClient)
		check     func(*testing.T, *app.Profile)
		wantErr   func(error) bool
	}{
		{
			name:  "invalid login, no calls",
			login: "-bad",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
			},
			wantErr: app.IsInvalidRequestError,
		},
		{
			name:  "account not found",
			login: "octocat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(nil, app.NotFoundError("not found"))
				gh.EXPECT().Repositories(gomock.Any(), gomock.Any(), gomock.Any()).Return(repos, nil).AnyTimes()
				gh.EXPECT().Events(gomock.Any(), gomock.Any(), gomock.Any()).Return(events, nil).AnyTimes()
				cc.EXPECT().Contributions(gomock.Any(), gomock.Any()).Return(history, nil).AnyTimes()
			},
			wantErr: app.IsNotFoundError,
		},
		{
			name:  "repositories rate limited",
			login: "octocat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(account, nil)
				gh.EXPECT().Repositories(gomock.Any(), "octocat", 10).Return(nil, app.RateLimitedError{Message: "limit"})
				gh.EXPECT().Events(gomock.Any(), gomock.Any(), gomock.Any()).Return(events, nil).AnyTimes()
				cc.EXPECT().Contributions(gomock.Any(), gomock.Any()).Return(history, nil).AnyTimes()
			},
			wantErr: app.IsRateLimitedError,
		},
		{
			name:  "account error takes precedence over repositories error",
			login: "octocat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(nil, app.UpstreamUnavailableError("down"))
				gh.EXPECT().Repositories(gomock.Any(), "octocat", 10).Return(nil, app.NotFoundError("not found")).AnyTimes()
				gh.EXPECT().Events(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("x")).AnyTimes()
				cc.EXPECT().Contributions(gomock.Any(), gomock.Any()).Return(nil, errors.New("x")).AnyTimes()
			},
			wantErr: app.IsUpstreamUnavailableError,
		},
		{
			name:  "best-effort failures degrade to empty results",
			login: "@octocat ",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(account, nil)
				gh.EXPECT().Repositories(gomock.Any(), "octocat", 10).Return(nil, nil)
				gh.EXPECT().Events(gomock.Any(), "octocat", 10).Return(nil, errors.New("events unavailable"))
				cc.EXPECT().Contributions(gomock.Any(), "octocat").Return(nil, errors.New("contributions unavailable"))
			},
			check: func(t *testing.T, p *app.Profile) {
				assert.Equal(t, []app.Activity{}, p.RecentActivity)
				assert.Equal(t, app.ContributionHistory{}, p.Stats.ContributionBreakdownByYear)
				assert.Equal(t, []app.TopRepository{}, p.TopRepositories)
				assert.Equal(t, []string{}, p.Stats.PrimaryLanguages)
			},
		},
		{
			name:  "valid profile",
			login: "octocat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(account, nil)
				gh.EXPECT().Repositories(gomock.Any(), "octocat", 10).Return(repos, nil)
				gh.EXPECT().Events(gomock.Any(), "octocat", 10).Return(events, nil)
				cc.EXPECT().Contributions(gomock.Any(), "octocat").Return(history, nil)
			},
			check: func(t *testing.T, p *app.Profile) {
				assert.Equal(t, "octocat", p.Login)
				assert.Equal(t, "The Octocat", p.Name)
				assert.Equal(t, "https://github.com/octocat", p.ProfileURL)
				assert.Equal(t, "", p.Company)

				assert.Equal(t, 8, p.Stats.PublicRepos)
				assert.Equal(t, 2, p.Stats.PublicGists)
				assert.Equal(t, 100, p.Stats.Followers)
				assert.Equal(t, 33, p.Stats.TotalStars)
				assert.Equal(t, 3, p.Stats.TotalForks)
				assert.Equal(t, []string{"Go", "Ruby", "C", "Python", "Java"}, p.Stats.PrimaryLanguages)
				assert.Equal(t, history, p.Stats.ContributionBreakdownByYear)

				var names []string
				for _, r := range p.TopRepositories {
					names = append(names, r.Name)
				}
				assert.Equal(t, []string{"b", "e", "a", "c", "h"}, names)
				assert.Equal(t, []string{"cli"}, p.TopRepositories[0].Topics)
				assert.Equal(t, []string{}, p.TopRepositories[1].Topics)

				require.Len(t, p.RecentActivity, 5)
				assert.Equal(t, app.Activity{Type: "PushEvent", Repo: "octocat/a", Action: "Pushed 2 commits"}, p.RecentActivity[0])
				assert.Equal(t, "Starred", p.RecentActivity[1].Action)
				assert.Equal(t, "Forked", p.RecentActivity[2].Action)
				assert.Equal(t, "opened issue", p.RecentActivity[3].Action)
				assert.Equal(t, "Created tag", p.RecentActivity[4].Action)
			},
		},
		{
			name:  "name falls back to login",
			login: "octocat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(&app.Account{Login: "octocat"}, nil)
				gh.EXPECT().Repositories(gomock.Any(), "octocat", 10).Return(nil, nil)
				gh.EXPECT().Events(gomock.Any(), "octocat", 10).Return(nil, nil)
				cc.EXPECT().Contributions(gomock.Any(), "octocat").Return(nil, nil)
			},
			check: func(t *testing.T, p *app.Profile) {
				assert.Equal(t, "octocat", p.Name)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			githubCli := mock.NewMockGithubClient(ctrl)
			contributionsCli := mock.NewMockContributionsClient(ctrl)
			tt.setupMock(githubCli, contributionsCli)

			s := app.NewService(githubCli, contributionsCli, time.Minute, newTestLogger())
			got, err := s.Profile(context.Background(), tt.login)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error kind: %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestServiceReputation(t *testing.T) {
	t.Parallel()

	year := time.Now().Year()

	tests := []struct {
		name      string
		login     string
		setupMock func(*mock.MockGithubClient, *mock.MockContributionsClient)
		want      *app.Reputation
		wantErr   func(error) bool
	}{
		{
			name:      "invalid login",
			login:     "a_b",
			setupMock: func(*mock.MockGithubClient, *mock.MockContributionsClient) {},
			wantErr:   app.IsInvalidRequestError,
		},
		{
			name:  "unknown account",
			login: "ghost",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "ghost").Return(nil, app.NotFoundError("not found"))
				cc.EXPECT().Contributions(gomock.Any(), "ghost").Return(nil, nil).AnyTimes()
			},
			wantErr: app.IsNotFoundError,
		},
		{
			name:  "contributions failure scores zero",
			login: "octocat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "octocat").Return(&app.Account{Login: "octocat"}, nil)
				cc.EXPECT().Contributions(gomock.Any(), "octocat").Return(nil, errors.New("down"))
			},
			want: &app.Reputation{
				Login:                       "octocat",
				Score:                       0,
				ContributionBreakdownByYear: app.ContributionHistory{},
			},
		},
		{
			name:  "score from history",
			login: "@OctoCat",
			setupMock: func(gh *mock.MockGithubClient, cc *mock.MockContributionsClient) {
				gh.EXPECT().Account(gomock.Any(), "OctoCat").Return(&app.Account{Login: "octocat"}, nil)
				cc.EXPECT().Contributions(gomock.Any(), "OctoCat").Return(app.ContributionHistory{
					strconv.Itoa(year): 400,
				}, nil)
			},
			want: &app.Reputation{
				Login:                       "octocat",
				Score:                       4,
				ContributionBreakdownByYear: app.ContributionHistory{strconv.Itoa(year): 400},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			githubCli := mock.NewMockGithubClient(ctrl)
			contributionsCli := mock.NewMockContributionsClient(ctrl)
			tt.setupMock(githubCli, contributionsCli)

			s := app.NewService(githubCli, contributionsCli, time.Minute, newTestLogger())
			got, err := s.Reputation(context.Background(), tt.login)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error kind: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
