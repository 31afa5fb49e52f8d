package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmarchuk/claimcheck/internal/model"
	"github.com/dmarchuk/claimcheck/internal/pipeline"
)

var (
	region        string
	freshness     time.Duration
	maxArticles   int
	temperature   float32
	provider      string
	providerModel string
	outJSON       string
	outReport     string
	noCache       bool
	noRobots      bool
	checkTimeout  time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Verify a single claim against recent news coverage",
	Long: `Check retrieves news coverage for a claim, extracts article bodies,
scores source credibility, and produces a verdict with rationale and
cited sources.

Example:
  claimcheck check "NASA discovered water on Mars"
  claimcheck check "..." --region GB --freshness 72h --max-articles 10
  claimcheck check "..." --provider gemini --json result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&region, "region", "US", "news region code (US, GB, IN, AU, CA, DE, FR, SG)")
	checkCmd.Flags().DurationVar(&freshness, "freshness", 48*time.Hour, "maximum article age")
	checkCmd.Flags().IntVar(&maxArticles, "max-articles", 8, "maximum articles to analyze")
	checkCmd.Flags().Float32Var(&temperature, "temperature", 0.3, "reasoning creativity (0.0-1.0)")
	checkCmd.Flags().StringVar(&provider, "provider", "", "reasoning provider (gemini, openai, ollama; empty = rule-based)")
	checkCmd.Flags().StringVar(&providerModel, "model", "", "reasoning model name (provider default if empty)")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "write full result JSON to this path")
	checkCmd.Flags().StringVar(&outReport, "report", "", "write shareable text report to this path")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	checkCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks on article hosts")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall verification timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Region: %s, freshness: %v, max articles: %d\n",
			cfg.News.Region, cfg.News.FreshnessWindow, cfg.News.MaxArticles)
		if cfg.Reason.Provider != "" {
			fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.Reason.Provider)
		}
	}

	p := pipeline.New(cfg)

	result, err := p.Verify(ctx, claim)
	if errors.Is(err, pipeline.ErrInsufficientEvidence) {
		return fmt.Errorf("no recent articles found; try widening --freshness or rephrasing the claim")
	}
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Search feed used: %s\n", result.SearchURL)
		fmt.Fprintf(os.Stderr, "Documents assembled: %d\n", len(result.Documents))
	}

	renderer := pipeline.NewRenderer()

	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return err
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}

	if outReport != "" {
		if err := renderer.RenderReport(result, outReport); err != nil {
			return err
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Wrote report: %s\n", outReport)
		}
	}

	renderer.RenderSummary(os.Stdout, result)

	return nil
}

// buildConfig resolves the pipeline config: defaults, then config file and
// CLAIMCHECK_* environment (via resolvedConfig), then only the flags the
// user actually passed.
func buildConfig(flags *pflag.FlagSet) (*model.Config, error) {
	cfg := resolvedConfig()

	if flags.Changed("region") {
		cfg.News.Region = region
	}
	if flags.Changed("freshness") {
		cfg.News.FreshnessWindow = freshness
	}
	if flags.Changed("max-articles") {
		cfg.News.MaxArticles = maxArticles
	}
	if flags.Changed("temperature") {
		cfg.Reason.Temperature = temperature
	}
	if flags.Changed("provider") {
		cfg.Reason.Provider = provider
	}
	if flags.Changed("model") {
		cfg.Reason.Model = providerModel
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noRobots {
		cfg.Extract.RespectRobots = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	switch strings.ToLower(cfg.Reason.Provider) {
	case "gemini", "google":
		cfg.Reason.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.Reason.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case "openai":
		cfg.Reason.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Reason.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Reason.BaseURL = baseURL
		}
	}

	return cfg, nil
}
