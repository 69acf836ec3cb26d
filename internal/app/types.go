package app

import "time"

// Account entity - core github account attributes.
type Account struct {
	Login           string
	Name            string
	Bio             string
	Company         string
	Location        string
	Blog            string
	TwitterUsername string
	PublicRepos     int
	PublicGists     int
	Followers       int
	Following       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AvatarURL       string
	HTMLURL         string
}

// Repository entity
type Repository struct {
	Name        string
	Description string
	Language    string
	Stars       int
	Forks       int
	UpdatedAt   time.Time
	HTMLURL     string
	Topics      []string
	Fork        bool
}

// Event is a single public activity entry of an account.
type Event struct {
	Type      string
	RepoName  string
	CreatedAt time.Time
	Payload   EventPayload
}

// EventPayload is implemented by all known event payload variants.
type EventPayload interface {
	eventPayload()
}

// PushPayload is the payload of PushEvent.
type PushPayload struct {
	Commits int
}

// CreatePayload is the payload of CreateEvent.
type CreatePayload struct {
	RefType string
}

// IssuesPayload is the payload of IssuesEvent.
type IssuesPayload struct {
	Action string
}

// PullRequestPayload is the payload of PullRequestEvent.
type PullRequestPayload struct {
	Action string
}

// ForkPayload is the payload of ForkEvent.
type ForkPayload struct{}

// WatchPayload is the payload of WatchEvent.
type WatchPayload struct{}

// UnknownPayload is used for all other event types.
type UnknownPayload struct{}

func (PushPayload) eventPayload()        {}
func (CreatePayload) eventPayload()      {}
func (IssuesPayload) eventPayload()      {}
func (PullRequestPayload) eventPayload() {}
func (ForkPayload) eventPayload()        {}
func (WatchPayload) eventPayload()       {}
func (UnknownPayload) eventPayload()     {}

// ContributionHistory maps calendar year to total contributions in that year.
type ContributionHistory map[string]int

// Profile is the aggregated, normalized view of a github account.
type Profile struct {
	Login           string          `json:"login"`
	Name            string          `json:"name"`
	AvatarURL       string          `json:"avatarUrl"`
	ProfileURL      string          `json:"profileUrl"`
	Bio             string          `json:"bio"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Blog            string          `json:"blog"`
	TwitterUsername string          `json:"twitterUsername"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Stats           ProfileStats    `json:"stats"`
	TopRepositories []TopRepository `json:"topRepositories"`
	RecentActivity  []Activity      `json:"recentActivity"`
}

// ProfileStats holds statistics derived from account and its repositories.
type ProfileStats struct {
	PublicRepos                 int                 `json:"publicRepos"`
	PublicGists                 int                 `json:"publicGists"`
	Followers                   int                 `json:"followers"`
	Following                   int                 `json:"following"`
	TotalStars                  int                 `json:"totalStars"`
	TotalForks                  int                 `json:"totalForks"`
	PrimaryLanguages            []string            `json:"primaryLanguages"`
	ContributionBreakdownByYear ContributionHistory `json:"contributionBreakdownByYear"`
}

// TopRepository is a repository entry in profile ranking.
type TopRepository struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Topics      []string  `json:"topics"`
	UpdatedAt   time.Time `json:"updatedAt"`
	URL         string    `json:"url"`
}

// Activity is a summarized event entry.
type Activity struct {
	Type      string    `json:"type"`
	Repo      string    `json:"repo"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reputation is the score computed for an account.
type Reputation struct {
	Login                       string              `json:"login"`
	Score                       int                 `json:"score"`
	ContributionBreakdownByYear ContributionHistory `json:"contributionBreakdownByYear"`
}
