package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Non-content elements stripped before any text is collected.
const strippedTags = "script, style, noscript, header, footer, nav, aside"

// Content-container selectors, tried in order. Semantic containers first,
// then common CMS content classes.
var contentSelectors = []string{
	"article",
	"main",
	"[itemprop='articleBody']",
	".article-content",
	".post-content",
	".story-content",
}

// SelectorStrategy is the generic HTML step: fetch the page, strip
// non-content elements, and take the first content-container selector
// whose text passes the word threshold.
type SelectorStrategy struct {
	fetcher  *Fetcher
	minWords int
}

// NewSelectorStrategy creates the selector strategy
func NewSelectorStrategy(fetcher *Fetcher, minWords int) *SelectorStrategy {
	return &SelectorStrategy{fetcher: fetcher, minWords: minWords}
}

// Name returns the strategy name
func (s *SelectorStrategy) Name() string {
	return "selectors"
}

// Attempt extracts article text via the content-container selector list
func (s *SelectorStrategy) Attempt(ctx context.Context, url string) (string, bool) {
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	doc.Find(strippedTags).Remove()

	for _, selector := range contentSelectors {
		matches := doc.Find(selector)
		if matches.Length() == 0 {
			continue
		}

		var parts []string
		matches.Each(func(_ int, sel *goquery.Selection) {
			parts = append(parts, sel.Text())
		})

		text := strings.Join(parts, " ")
		if wordCount(text) > s.minWords {
			return text, true
		}
	}

	return "", false
}
