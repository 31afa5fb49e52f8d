package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmarchuk/claimcheck/internal/cache"
	"github.com/dmarchuk/claimcheck/internal/extract"
	"github.com/dmarchuk/claimcheck/internal/llm"
	"github.com/dmarchuk/claimcheck/internal/model"
	"github.com/dmarchuk/claimcheck/internal/news"
	"github.com/dmarchuk/claimcheck/internal/reason"
	"github.com/dmarchuk/claimcheck/internal/score"
	"github.com/dmarchuk/claimcheck/internal/util"
	"github.com/dmarchuk/claimcheck/internal/worker"
)

// ErrInsufficientEvidence is the one terminal condition: no articles
// survived retrieval and freshness filtering, so there is nothing to
// reason over. Every other stage failure degrades into defaults instead.
var ErrInsufficientEvidence = errors.New("insufficient evidence")

// Stage seams, injectable for tests
type newsSearcher interface {
	Search(ctx context.Context, claim, region string) ([]model.NewsItem, string)
}

type articleExtractor interface {
	Extract(ctx context.Context, url string) string
}

type verdictReasoner interface {
	Analyze(ctx context.Context, claim string, docs []model.Document, temperature float32) model.VerdictResult
}

// Pipeline orchestrates one verification run: retrieve, filter, extract
// concurrently, score, reason. It holds no per-run state; each Verify call
// is independent.
type Pipeline struct {
	retriever newsSearcher
	extractor articleExtractor
	reasoner  verdictReasoner
	cache     cache.Cache
	config    *model.Config
}

// Result is the pipeline output contract consumed by the rendering layer
type Result struct {
	Claim     string              `json:"claim"`
	SearchURL string              `json:"search_url"`
	Documents []model.Document    `json:"documents"`
	Verdict   model.VerdictResult `json:"verdict"`
}

// New wires a pipeline from configuration
func New(cfg *model.Config) *Pipeline {
	var resultCache cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		resultCache = cache.NewLayeredCache(cfg.Cache.NewsTTL, cacheDir(cfg), cfg.Cache.ExtractTTL)
	}

	feedClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	retriever := news.NewRetriever(feedClient, cfg.HTTP.UserAgent, resultCache, cfg.Cache.NewsTTL)

	fetcher := extract.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)

	var robots *util.RobotsChecker
	if cfg.Extract.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	limiter := worker.NewLimiter(cfg.Extract.DomainRPS, cfg.Extract.DomainBurst)

	extractor := extract.NewExtractor(
		extract.DefaultChain(fetcher, cfg.HTTP.Timeout, cfg.Extract.MinWords),
		robots, limiter, resultCache, cfg.Cache.ExtractTTL,
	)

	provider, err := llm.NewProvider(llm.Config{
		Provider:   cfg.Reason.Provider,
		Model:      cfg.Reason.Model,
		APIKey:     cfg.Reason.APIKey,
		BaseURL:    cfg.Reason.BaseURL,
		Timeout:    cfg.Reason.Timeout,
		MaxTokens:  cfg.Reason.MaxTokens,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
		NoProxy:    cfg.HTTP.NoProxy,
	})
	if err != nil {
		// A misconfigured provider degrades to rule-based reasoning
		fmt.Fprintf(os.Stderr, "Warning: reasoning provider unavailable: %v\n", err)
		provider = nil
	}

	return &Pipeline{
		retriever: retriever,
		extractor: extractor,
		reasoner:  reason.NewExternal(provider, cfg.Reason.SnippetBudget),
		cache:     resultCache,
		config:    cfg,
	}
}

// Verify runs the full pipeline for one claim. The only error it returns
// is ErrInsufficientEvidence.
func (p *Pipeline) Verify(ctx context.Context, claim string) (*Result, error) {
	// 1. Retrieve candidate coverage
	items, searchURL := p.retriever.Search(ctx, claim, p.config.News.Region)

	// 2. Freshness filter: unparseable dates are kept (unknown age is
	// assumed fresh), then truncate to the article budget
	cutoff := time.Now().UTC().Add(-p.config.News.FreshnessWindow)
	var fresh []model.NewsItem
	for _, item := range items {
		if published, ok := news.ParsePublished(item.Published); ok && published.Before(cutoff) {
			continue
		}
		fresh = append(fresh, item)
	}
	if len(fresh) > p.config.News.MaxArticles {
		fresh = fresh[:p.config.News.MaxArticles]
	}

	// 3. Terminal condition
	if len(fresh) == 0 {
		return nil, fmt.Errorf("no recent articles for claim: %w", ErrInsufficientEvidence)
	}

	// 4. Extract and score concurrently
	docs := p.assembleDocuments(ctx, fresh)
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents assembled: %w", ErrInsufficientEvidence)
	}

	// 5. Reason
	verdict := p.verdictFor(ctx, claim, docs)

	return &Result{
		Claim:     claim,
		SearchURL: searchURL,
		Documents: docs,
		Verdict:   verdict,
	}, nil
}

// assembleDocuments runs the bounded extraction pool. Each task owns one
// pre-assigned slot, so Idx follows retrieval order and citation indices
// are stable across runs. A task's timeout or failure yields an empty-text
// document for that slot only; siblings are unaffected.
func (p *Pipeline) assembleDocuments(ctx context.Context, items []model.NewsItem) []model.Document {
	workers := p.config.Concurrency.ExtractWorkers
	if workers <= 0 {
		workers = 1
	}

	docs := make([]model.Document, len(items))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(slot int, item model.NewsItem) {
			defer wg.Done()

			text := ""
			select {
			case <-ctx.Done():
				// leave text empty; the document still exists
			case semaphore <- struct{}{}:
				taskCtx, cancel := context.WithTimeout(ctx, p.config.Concurrency.ExtractTimeout)
				text = p.extractor.Extract(taskCtx, item.Link)
				cancel()
				<-semaphore
			}

			docs[slot] = model.Document{
				Idx:         slot + 1,
				Title:       item.Title,
				URL:         item.Link,
				Published:   item.Published,
				Source:      item.Source,
				Text:        text,
				Credibility: score.Credibility(item.Link, text),
			}
		}(i, item)
	}

	wg.Wait()
	return docs
}

// verdictFor runs the reasoner with a short-lived result cache keyed on
// the claim, the document set, and the temperature.
func (p *Pipeline) verdictFor(ctx context.Context, claim string, docs []model.Document) model.VerdictResult {
	docsJSON, _ := json.Marshal(docs)
	key := cache.Key("verdict", claim, string(docsJSON), fmt.Sprintf("%.2f", p.config.Reason.Temperature))

	if data, found := p.cache.Get(key); found {
		var cached model.VerdictResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	verdict := p.reasoner.Analyze(ctx, claim, docs, p.config.Reason.Temperature)

	if data, err := json.Marshal(verdict); err == nil {
		_ = p.cache.Set(key, data, p.config.Cache.VerdictTTL)
	}

	return verdict
}

func cacheDir(cfg *model.Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claimcheck", "cache")
}
