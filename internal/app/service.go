package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	repositoriesCount = 10
	eventsCount       = 10

	primaryLanguagesLimit = 5
	topRepositoriesLimit  = 5
	recentActivityLimit   = 5
)

//go:generate mockgen -destination mock/githubcli.go -package mock github.com/m-zajac/ghreputation/internal/app GithubClient,ContributionsClient

// GithubClient returns public details about github accounts.
type GithubClient interface {
	Account(ctx context.Context, login string) (*Account, error)
	Repositories(ctx context.Context, login string, count int) ([]Repository, error)
	Events(ctx context.Context, login string, count int) ([]Event, error)
}

// ContributionsClient returns yearly contribution totals of github accounts.
type ContributionsClient interface {
	Contributions(ctx context.Context, login string) (ContributionHistory, error)
}

// Service is main apps entry point. Provides all app functionality
type Service struct {
	githubClient        GithubClient
	contributionsClient ContributionsClient
	timeout             time.Duration
	l                   logrus.FieldLogger
	now                 func() time.Time
}

// NewService creates new Service instance
func NewService(
	githubClient GithubClient,
	contributionsClient ContributionsClient,
	timeout time.Duration,
	l logrus.FieldLogger,
) *Service {
	return &Service{
		githubClient:        githubClient,
		contributionsClient: contributionsClient,
		timeout:             timeout,
		l:                   l,
		now:                 time.Now,
	}
}

// Profile aggregates public github data of given account.
//
// Account and repositories lookups are required - any failure there fails the whole call.
// Events and contributions lookups are best-effort and fall back to empty results.
func (s *Service) Profile(ctx context.Context, rawLogin string) (*Profile, error) {
	login, err := ParseLogin(rawLogin)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		account *Account
		repos   []Repository
		events  []Event
		history ContributionHistory
	)
	err = s.runLookups(ctx, login, []*lookup{
		{
			name:   "account",
			policy: required,
			run: func(ctx context.Context) (err error) {
				account, err = s.githubClient.Account(ctx, login)
				return err
			},
		},
		{
			name:   "repositories",
			policy: required,
			run: func(ctx context.Context) (err error) {
				repos, err = s.githubClient.Repositories(ctx, login, repositoriesCount)
				return err
			},
		},
		{
			name:   "events",
			policy: bestEffort,
			run: func(ctx context.Context) (err error) {
				events, err = s.githubClient.Events(ctx, login, eventsCount)
				return err
			},
		},
		{
			name:   "contributions",
			policy: bestEffort,
			run: func(ctx context.Context) (err error) {
				history, err = s.contributionsClient.Contributions(ctx, login)
				return err
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, &FetchFailedError{Op: "account lookup", Err: errors.New("empty response")}
	}

	return buildProfile(account, repos, events, history), nil
}

// Reputation returns reputation score of given account.
// Account existence is verified, contributions are fetched best-effort.
func (s *Service) Reputation(ctx context.Context, rawLogin string) (*Reputation, error) {
	login, err := ParseLogin(rawLogin)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		account *Account
		history ContributionHistory
	)
	err = s.runLookups(ctx, login, []*lookup{
		{
			name:   "account",
			policy: required,
			run: func(ctx context.Context) (err error) {
				account, err = s.githubClient.Account(ctx, login)
				return err
			},
		},
		{
			name:   "contributions",
			policy: bestEffort,
			run: func(ctx context.Context) (err error) {
				history, err = s.contributionsClient.Contributions(ctx, login)
				return err
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if account != nil && account.Login != "" {
		login = account.Login
	}
	if history == nil {
		history = ContributionHistory{}
	}

	return &Reputation{
		Login:                       login,
		Score:                       Score(history, s.now().Year()),
		ContributionBreakdownByYear: history,
	}, nil
}

// withTimeout limits ctx with service timeout. Zero timeout means no limit.
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

type lookupPolicy int

const (
	required lookupPolicy = iota
	bestEffort
)

type lookup struct {
	name   string
	policy lookupPolicy
	run    func(ctx context.Context) error
	err    error
}

// runLookups runs all lookups concurrently and waits for all of them.
// Returns first required lookup error in table order. Best-effort errors are only logged.
func (s *Service) runLookups(ctx context.Context, login string, lookups []*lookup) error {
	var g errgroup.Group
	for _, lk := range lookups {
		lk := lk
		g.Go(func() error {
			lk.err = lk.run(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for _, lk := range lookups {
		if lk.err == nil {
			continue
		}
		if lk.policy == required {
			return lk.err
		}
		s.l.WithFields(logrus.Fields{
			"login":  login,
			"lookup": lk.name,
		}).Warnf("best-effort lookup failed, using empty result: %v", lk.err)
	}

	return nil
}

func buildProfile(account *Account, repos []Repository, events []Event, history ContributionHistory) *Profile {
	name := account.Name
	if name == "" {
		name = account.Login
	}

	p := Profile{
		Login:           account.Login,
		Name:            name,
		AvatarURL:       account.AvatarURL,
		ProfileURL:      account.HTMLURL,
		Bio:             account.Bio,
		Company:         account.Company,
		Location:        account.Location,
		Blog:            account.Blog,
		TwitterUsername: account.TwitterUsername,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
		Stats: ProfileStats{
			PublicRepos:                 account.PublicRepos,
			PublicGists:                 account.PublicGists,
			Followers:                   account.Followers,
			Following:                   account.Following,
			PrimaryLanguages:            []string{},
			ContributionBreakdownByYear: ContributionHistory{},
		},
		TopRepositories: []TopRepository{},
		RecentActivity:  []Activity{},
	}
	for year, count := range history {
		p.Stats.ContributionBreakdownByYear[year] = count
	}

	// Forks are excluded from all repository based stats.
	original := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			original = append(original, r)
		}
	}

	seen := make(map[string]bool)
	for _, r := range original {
		p.Stats.TotalStars += r.Stars
		p.Stats.TotalForks += r.Forks

		if r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		if len(p.Stats.PrimaryLanguages) < primaryLanguagesLimit {
			p.Stats.PrimaryLanguages = append(p.Stats.PrimaryLanguages, r.Language)
		}
	}

	sort.SliceStable(original, func(i, j int) bool {
		return original[i].Stars > original[j].Stars
	})
	if len(original) > topRepositoriesLimit {
		original = original[:topRepositoriesLimit]
	}
	for _, r := range original {
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		p.TopRepositories = append(p.TopRepositories, TopRepository{
			Name:        r.Name,
			Description: r.Description,
			Language:    r.Language,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Topics:      topics,
			UpdatedAt:   r.UpdatedAt,
			URL:         r.HTMLURL,
		})
	}

	if len(events) > recentActivityLimit {
		events = events[:recentActivityLimit]
	}
	for _, e := range events {
		p.RecentActivity = append(p.RecentActivity, e.Activity())
	}

	return &p
}
