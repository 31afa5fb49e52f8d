package extract

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// PageTextStrategy is the last-resort step: return all visible text on the
// page, with no minimum length. It fails only when the page cannot be
// fetched or parsed at all.
type PageTextStrategy struct {
	fetcher *Fetcher
}

// NewPageTextStrategy creates the whole-page fallback strategy
func NewPageTextStrategy(fetcher *Fetcher) *PageTextStrategy {
	return &PageTextStrategy{fetcher: fetcher}
}

// Name returns the strategy name
func (s *PageTextStrategy) Name() string {
	return "pagetext"
}

// Attempt collects every visible text node on the page
func (s *PageTextStrategy) Attempt(ctx context.Context, url string) (string, bool) {
	raw, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", false
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				sb.WriteString(trimmed)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(sb.String()), true
}
