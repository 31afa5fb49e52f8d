package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmarchuk/claimcheck/internal/model"
)

// Renderer turns a pipeline Result into its output forms. It owns the
// consumer side of the output contract: rationale and cited sources are
// ordered lists rendered verbatim, and a cited idx that does not resolve
// against the documents is skipped, never an error.
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full result as indented JSON
func (r *Renderer) RenderJSON(result *Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}

	return nil
}

// RenderReport writes the shareable plain-text report
func (r *Renderer) RenderReport(result *Result, path string) error {
	if err := os.WriteFile(path, []byte(r.Report(result)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Report builds the shareable plain-text report
func (r *Renderer) Report(result *Result) string {
	var sb strings.Builder

	sb.WriteString("claimcheck analysis report\n")
	sb.WriteString("--------------------------\n\n")
	fmt.Fprintf(&sb, "Claim: %q\n\n", result.Claim)
	fmt.Fprintf(&sb, "Verdict: %s\n", result.Verdict.Verdict)
	fmt.Fprintf(&sb, "Confidence: %.0f%%\n\n", result.Verdict.Confidence*100)

	sb.WriteString("Key findings:\n")
	for i, point := range result.Verdict.Rationale {
		if i == 3 {
			break
		}
		fmt.Fprintf(&sb, "  - %s\n", point)
	}

	fmt.Fprintf(&sb, "\nSources analyzed: %d\n", len(result.Documents))
	fmt.Fprintf(&sb, "Analysis date: %s\n", time.Now().Format("2006-01-02 15:04"))

	return sb.String()
}

// RenderSummary prints the human-readable result
func (r *Renderer) RenderSummary(w io.Writer, result *Result) {
	fmt.Fprintf(w, "\nVerdict: %s (confidence %.0f%%)\n\n", result.Verdict.Verdict, result.Verdict.Confidence*100)

	fmt.Fprintln(w, "Rationale:")
	for _, point := range result.Verdict.Rationale {
		fmt.Fprintf(w, "  - %s\n", point)
	}

	if cited := result.Verdict.CitedSources; len(cited) > 0 {
		fmt.Fprintln(w, "\nCited snippets:")
		for _, cs := range cited {
			doc := findDocument(result.Documents, cs.Idx)
			if doc == nil {
				continue // dangling reference, skip
			}
			fmt.Fprintf(w, "  [%d] %q\n      %s (%s)\n", cs.Idx, cs.QuoteOrSummary, doc.Title, doc.URL)
		}
	}

	fmt.Fprintln(w, "\nSources analyzed:")
	for _, doc := range result.Documents {
		meta := make([]string, 0, 2)
		if doc.Source != "" {
			meta = append(meta, doc.Source)
		}
		if doc.Published != "" {
			meta = append(meta, doc.Published)
		}
		fmt.Fprintf(w, "  %d. %s\n     %s\n     credibility: %s (%.0f%%)",
			doc.Idx, doc.Title, doc.URL, credibilityLabel(doc.Credibility), doc.Credibility*100)
		if len(meta) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(meta, ", "))
		}
		fmt.Fprintln(w)
	}
}

func findDocument(docs []model.Document, idx int) *model.Document {
	for i := range docs {
		if docs[i].Idx == idx {
			return &docs[i]
		}
	}
	return nil
}

func credibilityLabel(score float64) string {
	switch {
	case score > 0.7:
		return "high"
	case score > 0.5:
		return "medium"
	default:
		return "low"
	}
}
