package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmarchuk/claimcheck/internal/pipeline"
	"github.com/dmarchuk/claimcheck/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	claimTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch reads one claim per line from a file and verifies each claim
through the full pipeline, running claims in parallel. One JSON result is
written per claim to the output directory.

Example:
  claimcheck batch claims.txt
  claimcheck batch claims.txt --concurrency 4 --output-dir ./results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "number of claims verified in parallel")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./claimcheck-results", "output directory for result files")
	batchCmd.Flags().DurationVar(&claimTimeout, "timeout", 2*time.Minute, "per-claim verification timeout")

	batchCmd.Flags().StringVar(&region, "region", "US", "news region code")
	batchCmd.Flags().DurationVar(&freshness, "freshness", 48*time.Hour, "maximum article age")
	batchCmd.Flags().IntVar(&maxArticles, "max-articles", 8, "maximum articles per claim")
	batchCmd.Flags().Float32Var(&temperature, "temperature", 0.3, "reasoning creativity (0.0-1.0)")
	batchCmd.Flags().StringVar(&provider, "provider", "", "reasoning provider (gemini, openai, ollama; empty = rule-based)")
	batchCmd.Flags().StringVar(&providerModel, "model", "", "reasoning model name")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks on article hosts")
}

// verifyJob verifies one claim through the pipeline
type verifyJob struct {
	claim    string
	pipeline *pipeline.Pipeline
	timeout  time.Duration
}

// verifyResult is the outcome of one claim verification
type verifyResult struct {
	claim  string
	result *pipeline.Result
	err    error
}

func (r *verifyResult) GetError() error {
	return r.err
}

func (j *verifyJob) Execute(ctx context.Context) worker.Result {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.pipeline.Verify(ctx, j.claim)
	return &verifyResult{claim: j.claim, result: result, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	claims, err := readClaims(file)
	if err != nil {
		return fmt.Errorf("read claims: %w", err)
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims found in %s", file)
	}

	cfg, err := buildConfig(cmd.Flags())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Verifying %d claims with %d workers\n", len(claims), batchConcurrency)

	p := pipeline.New(cfg)
	pool := worker.NewPool(batchConcurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&verifyJob{claim: claim, pipeline: p, timeout: claimTimeout})
	}

	renderer := pipeline.NewRenderer()
	succeeded, insufficient, failed := 0, 0, 0

	for _, res := range pool.Wait() {
		vr := res.(*verifyResult)

		switch {
		case errors.Is(vr.err, pipeline.ErrInsufficientEvidence):
			insufficient++
			fmt.Fprintf(os.Stderr, "- insufficient evidence: %s\n", vr.claim)
			continue
		case vr.err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "- failed: %s: %v\n", vr.claim, vr.err)
			continue
		}

		path := filepath.Join(batchOutputDir, claimFilename(vr.claim))
		if err := renderer.RenderJSON(vr.result, path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "- write failed: %s: %v\n", vr.claim, err)
			continue
		}

		succeeded++
		fmt.Fprintf(os.Stderr, "+ %s: %s (%.0f%%)\n",
			vr.claim, vr.result.Verdict.Verdict, vr.result.Verdict.Confidence*100)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d verified, %d insufficient evidence, %d failed\n",
		succeeded, insufficient, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d claims failed", failed, len(claims))
	}

	return nil
}

// claimFilename derives a stable result filename from the claim text
func claimFilename(claim string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(claim) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
		if sb.Len() >= 60 {
			break
		}
	}

	name := strings.Trim(sb.String(), "-")
	if name == "" {
		name = "claim"
	}

	return name + ".json"
}

// readClaims reads one claim per line, skipping blanks and comments
func readClaims(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
