package github

import (
	"encoding/json"
	"time"

	"github.com/m-zajac/ghreputation/internal/app"
)

type accountResponse struct {
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Blog            string    `json:"blog"`
	TwitterUsername string    `json:"twitter_username"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	AvatarURL       string    `json:"avatar_url"`
	HTMLURL         string    `json:"html_url"`
}

func (r accountResponse) ToAccount() app.Account {
	return app.Account{
		Login:           r.Login,
		Name:            r.Name,
		Bio:             r.Bio,
		Company:         r.Company,
		Location:        r.Location,
		Blog:            r.Blog,
		TwitterUsername: r.TwitterUsername,
		PublicRepos:     r.PublicRepos,
		PublicGists:     r.PublicGists,
		Followers:       r.Followers,
		Following:       r.Following,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		AvatarURL:       r.AvatarURL,
		HTMLURL:         r.HTMLURL,
	}
}

type reposResponse []struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
	Topics      []string  `json:"topics"`
	Fork        bool      `json:"fork"`
}

func (r reposResponse) ToRepositories() []app.Repository {
	rs := make([]app.Repository, 0, len(r))
	for _, el := range r {
		rs = append(rs, app.Repository{
			Name:        el.Name,
			Description: el.Description,
			Language:    el.Language,
			Stars:       el.Stars,
			Forks:       el.Forks,
			UpdatedAt:   el.UpdatedAt,
			HTMLURL:     el.HTMLURL,
			Topics:      el.Topics,
			Fork:        el.Fork,
		})
	}

	return rs
}

type eventsResponse []struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

func (r eventsResponse) ToEvents() []app.Event {
	es := make([]app.Event, 0, len(r))
	for _, el := range r {
		es = append(es, app.Event{
			Type:      el.Type,
			RepoName:  el.Repo.Name,
			CreatedAt: el.CreatedAt,
			Payload:   decodePayload(el.Type, el.Payload),
		})
	}

	return es
}

// decodePayload decodes known payloads. Malformed payloads decode to variant's zero value.
func decodePayload(eventType string, raw json.RawMessage) app.EventPayload {
	switch eventType {
	case "PushEvent":
		var p struct {
			Commits []json.RawMessage `json:"commits"`
		}
		_ = json.Unmarshal(raw, &p)
		return app.PushPayload{Commits: len(p.Commits)}
	case "CreateEvent":
		var p struct {
			RefType string `json:"ref_type"`
		}
		_ = json.Unmarshal(raw, &p)
		return app.CreatePayload{RefType: p.RefType}
	case "IssuesEvent":
		var p struct {
			Action string `json:"action"`
		}
		_ = json.Unmarshal(raw, &p)
		return app.IssuesPayload{Action: p.Action}
	case "PullRequestEvent":
		var p struct {
			Action string `json:"action"`
		}
		_ = json.Unmarshal(raw, &p)
		return app.PullRequestPayload{Action: p.Action}
	case "ForkEvent":
		return app.ForkPayload{}
	case "WatchEvent":
		return app.WatchPayload{}
	}

	return app.UnknownPayload{}
}

type contributionsResponse struct {
	Total         map[string]int `json:"total"`
	Contributions []struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	} `json:"contributions"`
}

// ToHistory returns yearly totals. Daily entries are summed when totals are missing.
func (r contributionsResponse) ToHistory() app.ContributionHistory {
	h := make(app.ContributionHistory)
	for year, count := range r.Total {
		if app.IsYear(year) {
			h[year] = count
		}
	}
	if len(h) > 0 {
		return h
	}

	for _, c := range r.Contributions {
		if len(c.Date) < 4 || !app.IsYear(c.Date[:4]) {
			continue
		}
		h[c.Date[:4]] += c.Count
	}

	return h
}
