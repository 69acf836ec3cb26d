package app

import (
	"strconv"
	"strings"
)

// Action returns one line summary of the event.
func (e Event) Action() string {
	switch p := e.Payload.(type) {
	case PushPayload:
		n := p.Commits
		if n < 1 {
			n = 1
		}
		if n == 1 {
			return "Pushed 1 commit"
		}
		return "Pushed " + strconv.Itoa(n) + " commits"
	case CreatePayload:
		refType := p.RefType
		if refType == "" {
			refType = "repository"
		}
		return "Created " + refType
	case IssuesPayload:
		return orDefault(p.Action, "updated") + " issue"
	case PullRequestPayload:
		return orDefault(p.Action, "updated") + " pull request"
	case ForkPayload:
		return "Forked"
	case WatchPayload:
		return "Starred"
	}

	name := strings.TrimSuffix(e.Type, "Event")
	if name == "" {
		name = "Unknown"
	}
	return name + " activity"
}

// Activity converts event to its summarized form.
func (e Event) Activity() Activity {
	return Activity{
		Type:      e.Type,
		Repo:      e.RepoName,
		Action:    e.Action(),
		CreatedAt: e.CreatedAt,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
