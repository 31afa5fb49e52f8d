package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/dmarchuk/claimcheck/internal/cache"
	"github.com/dmarchuk/claimcheck/internal/model"
)

const defaultSearchBase = "https://news.google.com/rss/search"

// Retriever searches a news syndication endpoint for coverage of a claim.
// It never returns an error: feed failures and empty feeds both come back
// as an empty item list paired with the last URL attempted.
type Retriever struct {
	parser     *gofeed.Parser
	searchBase string
	cache      cache.Cache
	ttl        time.Duration
}

// NewRetriever creates a news retriever. The cache may be cache.Nop{}.
func NewRetriever(httpClient *http.Client, userAgent string, c cache.Cache, ttl time.Duration) *Retriever {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	if httpClient != nil {
		parser.Client = httpClient
	}

	return &Retriever{
		parser:     parser,
		searchBase: defaultSearchBase,
		cache:      c,
		ttl:        ttl,
	}
}

type searchResult struct {
	Items []model.NewsItem `json:"items"`
	URL   string           `json:"url"`
}

// Search returns news items for the claim and the feed URL actually used.
// The region-qualified query is tried first; if it yields nothing, a
// generic query without locale parameters is tried.
func (r *Retriever) Search(ctx context.Context, claim, region string) ([]model.NewsItem, string) {
	key := cache.Key("news", claim, region)
	if data, found := r.cache.Get(key); found {
		var cached searchResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.Items, cached.URL
		}
	}

	escaped := url.QueryEscape(claim)
	primary := fmt.Sprintf("%s?q=%s&hl=en-%s&gl=%s&ceid=%s:en", r.searchBase, escaped, region, region, region)
	fallback := fmt.Sprintf("%s?q=%s", r.searchBase, escaped)

	for _, feedURL := range []string{primary, fallback} {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil || feed == nil || len(feed.Items) == 0 {
			continue
		}

		items := make([]model.NewsItem, 0, len(feed.Items))
		for _, entry := range feed.Items {
			items = append(items, model.NewsItem{
				Title:     entry.Title,
				Link:      entry.Link,
				Published: entry.Published,
				Source:    sourceName(entry),
			})
		}

		if data, err := json.Marshal(searchResult{Items: items, URL: feedURL}); err == nil {
			_ = r.cache.Set(key, data, r.ttl)
		}

		return items, feedURL
	}

	return nil, fallback
}

// sourceName recovers the publisher name for a feed entry. Google News
// titles carry the publisher as a " - Publisher" suffix; failing that, the
// link host is used.
func sourceName(entry *gofeed.Item) string {
	if idx := strings.LastIndex(entry.Title, " - "); idx > 0 && idx < len(entry.Title)-3 {
		return strings.TrimSpace(entry.Title[idx+3:])
	}

	if parsed, err := url.Parse(entry.Link); err == nil && parsed.Host != "" {
		return strings.TrimPrefix(parsed.Host, "www.")
	}

	return ""
}
