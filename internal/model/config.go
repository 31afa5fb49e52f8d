package model

import "time"

// Config holds the complete claimcheck configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	News        NewsConfig        `yaml:"news"`
	Extract     ExtractConfig     `yaml:"extract"`
	Reason      ReasonConfig      `yaml:"reason"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// NewsConfig controls news retrieval and freshness filtering
type NewsConfig struct {
	Region          string        `yaml:"region"`
	FreshnessWindow time.Duration `yaml:"freshness_window"`
	MaxArticles     int           `yaml:"max_articles"`
}

// ExtractConfig controls the article extraction chain
type ExtractConfig struct {
	MinWords      int     `yaml:"min_words"`
	RespectRobots bool    `yaml:"respect_robots"`
	DomainRPS     float64 `yaml:"domain_rps"` // per-domain politeness limit
	DomainBurst   int     `yaml:"domain_burst"`
}

// ReasonConfig controls the external reasoning provider
type ReasonConfig struct {
	Provider      string  `yaml:"provider"` // gemini, openai, ollama, or empty to disable
	Model         string  `yaml:"model"`
	APIKey        string  `yaml:"-"` // never serialized; comes from env
	BaseURL       string  `yaml:"base_url,omitempty"`
	Timeout       int     `yaml:"timeout"` // seconds
	MaxTokens     int     `yaml:"max_tokens"`
	Temperature   float32 `yaml:"temperature"`
	SnippetBudget int     `yaml:"snippet_budget"` // chars of evidence per source in the prompt
}

// CacheConfig controls the pipeline-owned result cache
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Dir        string        `yaml:"dir,omitempty"` // empty disables the disk layer
	NewsTTL    time.Duration `yaml:"news_ttl"`
	ExtractTTL time.Duration `yaml:"extract_ttl"`
	VerdictTTL time.Duration `yaml:"verdict_ttl"`
}

// ConcurrencyConfig controls the extraction worker pool
type ConcurrencyConfig struct {
	ExtractWorkers int           `yaml:"extract_workers"`
	ExtractTimeout time.Duration `yaml:"extract_timeout"` // per-article budget
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      8 * time.Second,
			UserAgent:    "claimcheck/0.1 (+https://github.com/dmarchuk/claimcheck)",
			MaxBodyBytes: 2_000_000,
		},
		News: NewsConfig{
			Region:          "US",
			FreshnessWindow: 48 * time.Hour,
			MaxArticles:     8,
		},
		Extract: ExtractConfig{
			MinWords:      50,
			RespectRobots: true,
			DomainRPS:     1,
			DomainBurst:   3,
		},
		Reason: ReasonConfig{
			Provider:      "", // rule-based only unless configured
			Timeout:       30,
			MaxTokens:     1000,
			Temperature:   0.3,
			SnippetBudget: 1200,
		},
		Cache: CacheConfig{
			Enabled:    true,
			NewsTTL:    time.Hour,
			ExtractTTL: 30 * time.Minute,
			VerdictTTL: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 3,
			ExtractTimeout: 12 * time.Second,
		},
		Output: OutputConfig{},
	}
}
