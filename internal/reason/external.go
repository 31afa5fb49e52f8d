package reason

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmarchuk/claimcheck/internal/llm"
	"github.com/dmarchuk/claimcheck/internal/model"
)

const defaultSnippetBudget = 1200

// External is the dual-path verdict reasoner. With a provider configured
// it prompts the generative service and recovers structure from whatever
// comes back; on any failure of the call, or if the output is empty, it
// delegates to the rule-based reasoner. Callers never see an error.
type External struct {
	provider      llm.Provider // nil means rule-based only
	rules         RuleBased
	snippetBudget int
}

// NewExternal creates the reasoner. provider may be nil.
func NewExternal(provider llm.Provider, snippetBudget int) *External {
	if snippetBudget <= 0 {
		snippetBudget = defaultSnippetBudget
	}
	return &External{
		provider:      provider,
		snippetBudget: snippetBudget,
	}
}

// Analyze produces a verdict for the claim over the documents. Total: it
// always returns a valid result.
func (r *External) Analyze(ctx context.Context, claim string, docs []model.Document, temperature float32) model.VerdictResult {
	if r.provider == nil {
		return r.rules.Analyze(claim, docs)
	}

	prompt := buildPrompt(claim, docs, r.snippetBudget)

	// Single attempt, no retries: on failure the rule-based path is the
	// retry.
	output, err := r.provider.Generate(ctx, prompt, temperature)
	if err != nil || strings.TrimSpace(output) == "" {
		return r.rules.Analyze(claim, docs)
	}

	if parsed := ParseModelOutput(output); parsed != nil {
		return *parsed
	}

	return Salvage(output, docs)
}

// buildPrompt embeds the claim and one trimmed snippet per document,
// requesting a strict JSON-only response.
func buildPrompt(claim string, docs []model.Document, budget int) string {
	bullets := make([]string, 0, len(docs))
	for _, doc := range docs {
		text := doc.Text
		if text == "" {
			text = doc.Title
		}
		bullets = append(bullets, fmt.Sprintf("[Source %d]\n%s", doc.Idx, TrimAtSentence(text, budget)))
	}

	return fmt.Sprintf(`You are an expert fact-checker. Use the EVIDENCE below to evaluate the CLAIM.

CLAIM:
"""%s"""

EVIDENCE (snippets from multiple sources):
%s

Task:
- Determine a verdict: one of "Likely True", "Likely False", or "Uncertain".
- Assign a confidence score between 0.0 and 1.0.
- Provide 3 short bullet points as rationale citing the most relevant sources.
- Provide up to 3 cited_sources objects with fields: idx (source index), quote_or_summary (short excerpt), relevance (low|med|high).

Return valid JSON only, using these keys: verdict, confidence, rationale (array of strings), cited_sources (array of objects).
`, claim, strings.Join(bullets, "\n\n"))
}

// TrimAtSentence trims text to at most maxChars runes, cutting at the last
// sentence terminator before the limit when one exists and hard-cutting
// otherwise. Never exceeds the budget.
func TrimAtSentence(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := runes[:maxChars]
	for i := len(cut) - 2; i >= 0; i-- {
		if isSentenceEnd(cut[i]) && unicode.IsSpace(cut[i+1]) {
			return string(cut[:i+1])
		}
	}

	return string(cut)
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
