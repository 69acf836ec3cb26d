package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const dateLayout = "2006-01-02"

// RenderMarkdown renders profile as markdown document.
func RenderMarkdown(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s (@%s)\n\n", p.Name, p.Login)
	b.WriteString("## Profile Overview\n")
	fmt.Fprintf(&b, "- **GitHub Profile**: [%s](%s)\n", p.ProfileURL, p.ProfileURL)
	fmt.Fprintf(&b, "- **Member since**: %s\n", formatDate(p.CreatedAt))
	fmt.Fprintf(&b, "- **Last active**: %s\n", formatDate(p.UpdatedAt))
	if p.Bio != "" {
		fmt.Fprintf(&b, "- **Bio**: %s\n", p.Bio)
	}
	if p.Company != "" {
		fmt.Fprintf(&b, "- **Company**: %s\n", p.Company)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "- **Location**: %s\n", p.Location)
	}
	if p.Blog != "" {
		link := p.Blog
		if !strings.HasPrefix(link, "http") {
			link = "https://" + link
		}
		fmt.Fprintf(&b, "- **Website**: [%s](%s)\n", p.Blog, link)
	}
	if p.TwitterUsername != "" {
		fmt.Fprintf(&b, "- **Twitter**: [@%s](https://twitter.com/%s)\n", p.TwitterUsername, p.TwitterUsername)
	}

	b.WriteString("\n## GitHub Statistics\n")
	fmt.Fprintf(&b, "- **Public Repositories**: %d\n", p.Stats.PublicRepos)
	fmt.Fprintf(&b, "- **Public Gists**: %d\n", p.Stats.PublicGists)
	fmt.Fprintf(&b, "- **Followers**: %d\n", p.Stats.Followers)
	fmt.Fprintf(&b, "- **Following**: %d\n", p.Stats.Following)
	fmt.Fprintf(&b, "- **Total Stars Received**: %d\n", p.Stats.TotalStars)
	fmt.Fprintf(&b, "- **Total Forks**: %d\n", p.Stats.TotalForks)
	if len(p.Stats.PrimaryLanguages) > 0 {
		fmt.Fprintf(&b, "- **Primary Languages**: %s\n", strings.Join(p.Stats.PrimaryLanguages, ", "))
	}
	if len(p.Stats.ContributionBreakdownByYear) > 0 {
		years := make([]string, 0, len(p.Stats.ContributionBreakdownByYear))
		for y := range p.Stats.ContributionBreakdownByYear {
			years = append(years, y)
		}
		sort.Strings(years)
		parts := make([]string, 0, len(years))
		for _, y := range years {
			parts = append(parts, fmt.Sprintf("%s: %d", y, p.Stats.ContributionBreakdownByYear[y]))
		}
		fmt.Fprintf(&b, "- **Contributions by Year**: %s\n", strings.Join(parts, ", "))
	}

	if len(p.TopRepositories) > 0 {
		b.WriteString("\n## Top Repositories\n")
		for _, r := range p.TopRepositories {
			fmt.Fprintf(&b, "\n### [%s](%s)\n", r.Name, r.URL)
			if r.Description != "" {
				b.WriteString(r.Description + "\n")
			}
			language := r.Language
			if language == "" {
				language = "N/A"
			}
			fmt.Fprintf(&b, "- **Language**: %s\n", language)
			fmt.Fprintf(&b, "- **Stars**: %d | **Forks**: %d\n", r.Stars, r.Forks)
			if len(r.Topics) > 0 {
				fmt.Fprintf(&b, "- **Topics**: %s\n", strings.Join(r.Topics, ", "))
			}
			fmt.Fprintf(&b, "- **Last updated**: %s\n", formatDate(r.UpdatedAt))
		}
	}

	b.WriteString("\n## Recent Activity\n")
	if len(p.RecentActivity) == 0 {
		b.WriteString("No recent public activity available.\n")
	}
	for _, a := range p.RecentActivity {
		fmt.Fprintf(&b, "- **%s**: %s\n", formatDate(a.CreatedAt), activityLine(a))
	}

	return b.String()
}

func activityLine(a Activity) string {
	switch a.Type {
	case "PushEvent":
		return a.Action + " to " + a.Repo
	case "ForkEvent", "WatchEvent":
		return a.Action + " " + a.Repo
	}
	return a.Action + " in " + a.Repo
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(dateLayout)
}

// PlainText flattens markdown document into single line of plain text.
// Markup is dropped, links are replaced with their labels.
func PlainText(markdown string) string {
	src := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
				b.WriteByte(' ')
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, f := range fields {
		if f != "|" {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}
