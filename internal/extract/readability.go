package extract

import (
	"context"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityStrategy is the specialized extraction step: download and
// parse the page through the readability engine, accepting the result only
// if it yields a substantive body.
type ReadabilityStrategy struct {
	timeout  time.Duration
	minWords int
}

// NewReadabilityStrategy creates the readability strategy
func NewReadabilityStrategy(timeout time.Duration, minWords int) *ReadabilityStrategy {
	return &ReadabilityStrategy{timeout: timeout, minWords: minWords}
}

// Name returns the strategy name
func (s *ReadabilityStrategy) Name() string {
	return "readability"
}

// Attempt extracts the article body via readability
func (s *ReadabilityStrategy) Attempt(ctx context.Context, url string) (string, bool) {
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return "", false
	}

	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", false
	}

	text := article.TextContent
	if wordCount(text) <= s.minWords {
		return "", false
	}

	return text, true
}
