package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	date := time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)
	p := &Profile{
		Login:      "octocat",
		Name:       "The Octocat",
		ProfileURL: "https://github.com/octocat",
		Blog:       "octo.blog",
		CreatedAt:  date,
		UpdatedAt:  date,
		Stats: ProfileStats{
			PublicRepos:                 3,
			TotalStars:                  12,
			PrimaryLanguages:            []string{"Go", "C"},
			ContributionBreakdownByYear: ContributionHistory{"2024": 10, "2023": 5},
		},
		TopRepositories: []TopRepository{
			{Name: "hello", URL: "https://github.com/octocat/hello", Stars: 12, Forks: 1, Topics: []string{"demo"}, UpdatedAt: date},
		},
		RecentActivity: []Activity{
			{Type: "PushEvent", Repo: "octocat/hello", Action: "Pushed 2 commits", CreatedAt: date},
			{Type: "WatchEvent", Repo: "x/y", Action: "Starred", CreatedAt: date},
			{Type: "IssuesEvent", Repo: "x/z", Action: "opened issue", CreatedAt: date},
		},
	}

	md := RenderMarkdown(p)
	assert.Contains(t, md, "# The Octocat (@octocat)")
	assert.Contains(t, md, "- **Member since**: 2020-03-04")
	assert.Contains(t, md, "- **Website**: [octo.blog](https://octo.blog)")
	assert.NotContains(t, md, "**Bio**")
	assert.Contains(t, md, "- **Primary Languages**: Go, C")
	assert.Contains(t, md, "- **Contributions by Year**: 2023: 5, 2024: 10")
	assert.Contains(t, md, "### [hello](https://github.com/octocat/hello)")
	assert.Contains(t, md, "- **Language**: N/A")
	assert.Contains(t, md, "- **Stars**: 12 | **Forks**: 1")
	assert.Contains(t, md, "- **Topics**: demo")
	assert.Contains(t, md, "- **2020-03-04**: Pushed 2 commits to octocat/hello")
	assert.Contains(t, md, "- **2020-03-04**: Starred x/y")
	assert.Contains(t, md, "- **2020-03-04**: opened issue in x/z")
}

func TestRenderMarkdownWithoutActivity(t *testing.T) {
	md := RenderMarkdown(&Profile{Login: "ghost", Name: "ghost"})
	assert.Contains(t, md, "No recent public activity available.")
	assert.NotContains(t, md, "## Top Repositories")
	assert.Contains(t, md, "- **Member since**: unknown")
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "empty",
			markdown: "",
			want:     "",
		},
		{
			name:     "headings and lists",
			markdown: "# Title\n\n## Section\n- one\n- two\n",
			want:     "Title Section one two",
		},
		{
			name:     "emphasis, links, code and pipes",
			markdown: "- **Bold**: [link](http://example.com) | `code`\n",
			want:     "Bold: link code",
		},
		{
			name:     "soft line breaks",
			markdown: "first line\nsecond line\n\nnext paragraph",
			want:     "first line second line next paragraph",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.markdown))
		})
	}
}

func TestPlainTextOfRenderedProfile(t *testing.T) {
	p := &Profile{
		Login:      "octocat",
		Name:       "The Octocat",
		ProfileURL: "https://github.com/octocat",
	}
	got := PlainText(RenderMarkdown(p))
	assert.Contains(t, got, "The Octocat (@octocat) Profile Overview GitHub Profile: https://github.com/octocat")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "#")
}
