package reason

import (
	"math"
	"strings"
	"testing"

	"github.com/dmarchuk/claimcheck/internal/model"
)

func supportingDoc(idx int, cred float64) model.Document {
	return model.Document{
		Idx:         idx,
		Title:       "NASA confirms water discovery on Mars",
		URL:         "https://example.com/a",
		Text:        "Scientists confirmed the water discovery on Mars this week.",
		Credibility: cred,
	}
}

func refutingDoc(idx int, cred float64) model.Document {
	return model.Document{
		Idx:         idx,
		Title:       "Fact check",
		URL:         "https://example.com/b",
		Text:        "Officials said there is no evidence for the viral report and denied it.",
		Credibility: cred,
	}
}

func TestRuleBasedLikelyTrue(t *testing.T) {
	claim := "NASA discovered water on Mars"
	docs := []model.Document{
		supportingDoc(1, 0.9),
		supportingDoc(2, 0.8),
		supportingDoc(3, 0.8),
		supportingDoc(4, 0.7),
		{Idx: 5, Title: "Unrelated story", Text: "Something about markets.", Credibility: 0.8},
	}

	got := RuleBased{}.Analyze(claim, docs)

	if got.Verdict != model.VerdictLikelyTrue {
		t.Fatalf("verdict = %q, want %q", got.Verdict, model.VerdictLikelyTrue)
	}
	// confidence = min(0.9, avg credibility) = min(0.9, 0.8) = 0.8
	if math.Abs(got.Confidence-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want 0.8", got.Confidence)
	}
	if len(got.Rationale) != 3 {
		t.Errorf("rationale length = %d, want 3", len(got.Rationale))
	}
	if !strings.HasPrefix(got.Rationale[0], "4/5 sources mention") {
		t.Errorf("rationale[0] = %q", got.Rationale[0])
	}
	if len(got.CitedSources) != 3 {
		t.Errorf("cited length = %d, want 3", len(got.CitedSources))
	}
}

func TestRuleBasedLikelyTrueCapsConfidence(t *testing.T) {
	claim := "NASA discovered water on Mars"
	docs := []model.Document{
		supportingDoc(1, 0.95),
		supportingDoc(2, 0.95),
	}

	got := RuleBased{}.Analyze(claim, docs)
	if got.Verdict != model.VerdictLikelyTrue {
		t.Fatalf("verdict = %q, want %q", got.Verdict, model.VerdictLikelyTrue)
	}
	if got.Confidence > 0.9 {
		t.Errorf("confidence = %v, must be capped at 0.9", got.Confidence)
	}
}

func TestRuleBasedLikelyFalse(t *testing.T) {
	claim := "Celebrity secretly moved to the moon"
	docs := []model.Document{
		refutingDoc(1, 0.9),
		refutingDoc(2, 0.8),
		refutingDoc(3, 0.7),
		{Idx: 4, Title: "Entertainment news", Text: "A roundup of celebrity stories.", Credibility: 0.5},
		{Idx: 5, Title: "Opinion", Text: "Thoughts on space travel.", Credibility: 0.5},
	}

	got := RuleBased{}.Analyze(claim, docs)

	if got.Verdict != model.VerdictLikelyFalse {
		t.Fatalf("verdict = %q, want %q", got.Verdict, model.VerdictLikelyFalse)
	}
	// avg = (0.9+0.8+0.7+0.5+0.5)/5 = 0.68; confidence = min(0.85, 0.5+0.34) = 0.84
	if math.Abs(got.Confidence-0.84) > 1e-9 {
		t.Errorf("confidence = %v, want 0.84", got.Confidence)
	}
	if !strings.HasPrefix(got.Rationale[0], "3/5 sources contain language") {
		t.Errorf("rationale[0] = %q", got.Rationale[0])
	}
}

func TestRuleBasedUncertain(t *testing.T) {
	claim := "Quantum computers broke encryption yesterday"
	docs := []model.Document{
		{Idx: 1, Title: "Tech roundup", Text: "General technology news.", Credibility: 0.5},
		{Idx: 2, Title: "Science blog", Text: "A look at research directions.", Credibility: 0.55},
	}

	got := RuleBased{}.Analyze(claim, docs)

	if got.Verdict != model.VerdictUncertain {
		t.Fatalf("verdict = %q, want %q", got.Verdict, model.VerdictUncertain)
	}
	if got.Confidence > 0.6 {
		t.Errorf("confidence = %v, must be capped at 0.6", got.Confidence)
	}
	if len(got.Rationale) != 3 {
		t.Errorf("rationale length = %d, want 3", len(got.Rationale))
	}
}

func TestRuleBasedEmptyDocs(t *testing.T) {
	got := RuleBased{}.Analyze("any claim", nil)

	if got.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %q, want %q", got.Verdict, model.VerdictUncertain)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %v, want 0 for empty evidence", got.Confidence)
	}
	if len(got.CitedSources) != 0 {
		t.Errorf("cited length = %d, want 0", len(got.CitedSources))
	}
}

func TestRuleBasedSupportNeedsCredibility(t *testing.T) {
	// Broad keyword support with low average credibility stays Uncertain.
	claim := "NASA discovered water on Mars"
	docs := []model.Document{
		supportingDoc(1, 0.5),
		supportingDoc(2, 0.5),
		supportingDoc(3, 0.5),
	}

	got := RuleBased{}.Analyze(claim, docs)
	if got.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %q, want %q with low credibility", got.Verdict, model.VerdictUncertain)
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		total    int
		fraction float64
		want     int
	}{
		{0, 0.6, 1},
		{1, 0.6, 1},
		{5, 0.6, 3},
		{5, 0.5, 3},
		{8, 0.6, 5},
		{10, 0.5, 5},
	}

	for _, tt := range tests {
		if got := threshold(tt.total, tt.fraction); got != tt.want {
			t.Errorf("threshold(%d, %v) = %d, want %d", tt.total, tt.fraction, got, tt.want)
		}
	}
}

func TestClaimKeywords(t *testing.T) {
	got := claimKeywords("The cat DID eat a big Sandwich")
	want := []string{"sandwich"}

	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDocExcerptFallsBackToTitle(t *testing.T) {
	doc := model.Document{Title: "Headline only", Text: ""}
	if got := docExcerpt(doc); got != "Headline only" {
		t.Errorf("excerpt = %q, want title fallback", got)
	}

	long := model.Document{Text: strings.Repeat("a", 500)}
	if got := docExcerpt(long); len([]rune(got)) != maxExcerptChars {
		t.Errorf("excerpt length = %d, want %d", len([]rune(got)), maxExcerptChars)
	}
}
