package extract

import (
	"context"
	"strings"
	"time"

	"github.com/dmarchuk/claimcheck/internal/cache"
	"github.com/dmarchuk/claimcheck/internal/util"
	"github.com/dmarchuk/claimcheck/internal/worker"
)

// Strategy is one method in the ordered chain attempting to obtain article
// body text from a URL. A failed attempt reports ok=false; it never
// propagates an error, because a strategy failure just means "try the next
// one".
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, url string) (text string, ok bool)
}

// Extractor runs an ordered chain of strategies and accepts the first
// success. If every strategy fails it returns empty text: absent evidence
// is meaningful downstream and is never reported as an error.
type Extractor struct {
	strategies []Strategy
	robots     *util.RobotsChecker // nil disables the robots gate
	limiter    *worker.Limiter     // nil disables per-domain politeness
	cache      cache.Cache
	ttl        time.Duration
}

// NewExtractor creates an extractor over the given strategy chain
func NewExtractor(strategies []Strategy, robots *util.RobotsChecker, limiter *worker.Limiter, c cache.Cache, ttl time.Duration) *Extractor {
	return &Extractor{
		strategies: strategies,
		robots:     robots,
		limiter:    limiter,
		cache:      c,
		ttl:        ttl,
	}
}

// Extract returns best-effort body text for the URL, or "" if nothing
// could be extracted.
func (e *Extractor) Extract(ctx context.Context, url string) string {
	key := cache.Key("extract", url)
	if data, found := e.cache.Get(key); found {
		return string(data)
	}

	if e.robots != nil && !e.robots.Allowed(url) {
		return ""
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, url); err != nil {
			return ""
		}
	}

	for _, strategy := range e.strategies {
		text, ok := strategy.Attempt(ctx, url)
		if !ok {
			continue
		}
		text = normalizeWhitespace(text)
		_ = e.cache.Set(key, []byte(text), e.ttl)
		return text
	}

	return ""
}

// DefaultChain is the production strategy order: specialized readability
// extraction, then selector-based extraction, then whole-page text.
func DefaultChain(fetcher *Fetcher, timeout time.Duration, minWords int) []Strategy {
	return []Strategy{
		NewReadabilityStrategy(timeout, minWords),
		NewSelectorStrategy(fetcher, minWords),
		NewPageTextStrategy(fetcher),
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
