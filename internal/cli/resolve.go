package cli

import (
	"github.com/spf13/viper"

	"github.com/dmarchuk/claimcheck/internal/model"
)

// resolvedConfig layers the config file and CLAIMCHECK_* environment
// variables (both read through viper) over the built-in defaults. Flag
// overrides are applied afterwards by the commands, so the effective
// precedence is flags > env > config file > defaults.
func resolvedConfig() *model.Config {
	cfg := model.DefaultConfig()

	if viper.IsSet("http.timeout") {
		cfg.HTTP.Timeout = viper.GetDuration("http.timeout")
	}
	if viper.IsSet("http.user_agent") {
		cfg.HTTP.UserAgent = viper.GetString("http.user_agent")
	}
	if viper.IsSet("http.max_body_bytes") {
		cfg.HTTP.MaxBodyBytes = viper.GetInt64("http.max_body_bytes")
	}
	if viper.IsSet("http.http_proxy") {
		cfg.HTTP.HTTPProxy = viper.GetString("http.http_proxy")
	}
	if viper.IsSet("http.https_proxy") {
		cfg.HTTP.HTTPSProxy = viper.GetString("http.https_proxy")
	}
	if viper.IsSet("http.no_proxy") {
		cfg.HTTP.NoProxy = viper.GetString("http.no_proxy")
	}

	if viper.IsSet("news.region") {
		cfg.News.Region = viper.GetString("news.region")
	}
	if viper.IsSet("news.freshness_window") {
		cfg.News.FreshnessWindow = viper.GetDuration("news.freshness_window")
	}
	if viper.IsSet("news.max_articles") {
		cfg.News.MaxArticles = viper.GetInt("news.max_articles")
	}

	if viper.IsSet("extract.min_words") {
		cfg.Extract.MinWords = viper.GetInt("extract.min_words")
	}
	if viper.IsSet("extract.respect_robots") {
		cfg.Extract.RespectRobots = viper.GetBool("extract.respect_robots")
	}
	if viper.IsSet("extract.domain_rps") {
		cfg.Extract.DomainRPS = viper.GetFloat64("extract.domain_rps")
	}
	if viper.IsSet("extract.domain_burst") {
		cfg.Extract.DomainBurst = viper.GetInt("extract.domain_burst")
	}

	if viper.IsSet("reason.provider") {
		cfg.Reason.Provider = viper.GetString("reason.provider")
	}
	if viper.IsSet("reason.model") {
		cfg.Reason.Model = viper.GetString("reason.model")
	}
	if viper.IsSet("reason.base_url") {
		cfg.Reason.BaseURL = viper.GetString("reason.base_url")
	}
	if viper.IsSet("reason.timeout") {
		cfg.Reason.Timeout = viper.GetInt("reason.timeout")
	}
	if viper.IsSet("reason.max_tokens") {
		cfg.Reason.MaxTokens = viper.GetInt("reason.max_tokens")
	}
	if viper.IsSet("reason.temperature") {
		cfg.Reason.Temperature = float32(viper.GetFloat64("reason.temperature"))
	}
	if viper.IsSet("reason.snippet_budget") {
		cfg.Reason.SnippetBudget = viper.GetInt("reason.snippet_budget")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.dir") {
		cfg.Cache.Dir = viper.GetString("cache.dir")
	}
	if viper.IsSet("cache.news_ttl") {
		cfg.Cache.NewsTTL = viper.GetDuration("cache.news_ttl")
	}
	if viper.IsSet("cache.extract_ttl") {
		cfg.Cache.ExtractTTL = viper.GetDuration("cache.extract_ttl")
	}
	if viper.IsSet("cache.verdict_ttl") {
		cfg.Cache.VerdictTTL = viper.GetDuration("cache.verdict_ttl")
	}

	if viper.IsSet("concurrency.extract_workers") {
		cfg.Concurrency.ExtractWorkers = viper.GetInt("concurrency.extract_workers")
	}
	if viper.IsSet("concurrency.extract_timeout") {
		cfg.Concurrency.ExtractTimeout = viper.GetDuration("concurrency.extract_timeout")
	}

	if viper.IsSet("output.verbose") {
		cfg.Output.Verbose = viper.GetBool("output.verbose")
	}

	return cfg
}
