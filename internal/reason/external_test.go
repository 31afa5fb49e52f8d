package reason

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmarchuk/claimcheck/internal/model"
)

// mockProvider returns a canned response or error
type mockProvider struct {
	output string
	err    error
	calls  int
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.calls++
	return m.output, m.err
}

func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func evidenceDocs() []model.Document {
	return []model.Document{
		{Idx: 1, Title: "NASA confirms discovery", URL: "https://nasa.gov/a",
			Text: "NASA confirmed the water discovery on Mars.", Credibility: 0.95},
		{Idx: 2, Title: "Mars water found", URL: "https://reuters.com/b",
			Text: "Scientists announced water was found on Mars.", Credibility: 0.95},
	}
}

func TestExternalNilProviderUsesRules(t *testing.T) {
	r := NewExternal(nil, 0)
	got := r.Analyze(context.Background(), "NASA discovered water on Mars", evidenceDocs(), 0.3)

	if got.Verdict != model.VerdictLikelyTrue {
		t.Errorf("verdict = %q, want rule-based %q", got.Verdict, model.VerdictLikelyTrue)
	}
}

func TestExternalProviderErrorFallsBack(t *testing.T) {
	mock := &mockProvider{err: errors.New("service unavailable")}
	r := NewExternal(mock, 0)

	got := r.Analyze(context.Background(), "NASA discovered water on Mars", evidenceDocs(), 0.3)

	if mock.calls != 1 {
		t.Errorf("provider calls = %d, want exactly 1 (no retries)", mock.calls)
	}
	if got.Verdict != model.VerdictLikelyTrue {
		t.Errorf("verdict = %q, want rule-based %q", got.Verdict, model.VerdictLikelyTrue)
	}
}

func TestExternalEmptyOutputFallsBack(t *testing.T) {
	mock := &mockProvider{output: "   \n  "}
	r := NewExternal(mock, 0)

	got := r.Analyze(context.Background(), "NASA discovered water on Mars", evidenceDocs(), 0.3)
	if got.Verdict != model.VerdictLikelyTrue {
		t.Errorf("verdict = %q, want rule-based %q", got.Verdict, model.VerdictLikelyTrue)
	}
}

func TestExternalParsesStructuredOutput(t *testing.T) {
	mock := &mockProvider{output: `{"verdict": "Likely False", "confidence": 0.88, "rationale": ["Refuted."]}`}
	r := NewExternal(mock, 0)

	got := r.Analyze(context.Background(), "some claim", evidenceDocs(), 0.3)

	if got.Verdict != model.VerdictLikelyFalse {
		t.Errorf("verdict = %q, want %q", got.Verdict, model.VerdictLikelyFalse)
	}
	if got.Confidence != 0.88 {
		t.Errorf("confidence = %v, want 0.88", got.Confidence)
	}
}

func TestExternalSalvagesUnstructuredOutput(t *testing.T) {
	mock := &mockProvider{output: "The claim appears likely true.\nI estimate 70% confidence given the coverage."}
	r := NewExternal(mock, 0)

	got := r.Analyze(context.Background(), "some claim", evidenceDocs(), 0.3)

	if got.Verdict != model.VerdictLikelyTrue {
		t.Errorf("verdict = %q, want salvaged %q", got.Verdict, model.VerdictLikelyTrue)
	}
	if got.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", got.Confidence)
	}
	if len(got.CitedSources) != 2 {
		t.Errorf("cited length = %d, want 2 synthesized citations", len(got.CitedSources))
	}
}

func TestBuildPromptLayout(t *testing.T) {
	prompt := buildPrompt("NASA discovered water on Mars", evidenceDocs(), 1200)

	if !strings.Contains(prompt, `"""NASA discovered water on Mars"""`) {
		t.Error("prompt missing quoted claim")
	}
	if !strings.Contains(prompt, "[Source 1]") || !strings.Contains(prompt, "[Source 2]") {
		t.Error("prompt missing source markers")
	}
	if !strings.Contains(prompt, "Return valid JSON only") {
		t.Error("prompt missing JSON instruction")
	}
}

func TestBuildPromptUsesTitleWhenTextEmpty(t *testing.T) {
	docs := []model.Document{{Idx: 1, Title: "Headline only", Text: ""}}
	prompt := buildPrompt("claim", docs, 1200)

	if !strings.Contains(prompt, "Headline only") {
		t.Error("prompt should fall back to the title for empty text")
	}
}

func TestTrimAtSentence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{"under budget", "Short text.", 100, "Short text."},
		{"cuts at sentence", "First sentence. Second sentence runs long here.", 30, "First sentence."},
		{"hard cut without terminator", "no punctuation in this text at all here", 10, "no punctua"},
		{"question mark", "Is it true? More follows after that point.", 20, "Is it true?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAtSentence(tt.text, tt.maxChars)
			if got != tt.want {
				t.Errorf("TrimAtSentence(%q, %d) = %q, want %q", tt.text, tt.maxChars, got, tt.want)
			}
			if len([]rune(got)) > tt.maxChars {
				t.Errorf("result exceeds budget: %d > %d", len([]rune(got)), tt.maxChars)
			}
		})
	}
}
