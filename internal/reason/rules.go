package reason

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dmarchuk/claimcheck/internal/model"
)

const maxExcerptChars = 280

var wordRe = regexp.MustCompile(`\w+`)

// Phrases whose presence in a document suggests the claim was refuted
var refutationPhrases = []string{
	"no evidence",
	"not true",
	"debunk",
	"false",
	"denied",
	"not found",
	"refute",
}

// RuleBased is the deterministic fallback reasoner: keyword and
// contradiction counting over the evidence documents. It makes no external
// calls and never fails.
type RuleBased struct{}

// Analyze classifies the claim against the documents
func (RuleBased) Analyze(claim string, docs []model.Document) model.VerdictResult {
	keywords := claimKeywords(claim)
	total := len(docs)

	support := 0
	contradict := 0
	var credSum float64
	cited := make([]model.CitedSource, 0, 3)

	for _, doc := range docs {
		text := strings.ToLower(doc.Title + " " + doc.Text)

		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				support++
				break
			}
		}

		for _, phrase := range refutationPhrases {
			if strings.Contains(text, phrase) {
				contradict++
				break
			}
		}

		credSum += doc.Credibility

		if len(cited) < 3 {
			cited = append(cited, model.CitedSource{
				Idx:            doc.Idx,
				QuoteOrSummary: docExcerpt(doc),
				Relevance:      model.RelevanceMed,
			})
		}
	}

	avgCred := 0.0
	if total > 0 {
		avgCred = credSum / float64(total)
	}

	var verdict model.Verdict
	var confidence float64
	var rationale []string

	switch {
	case support >= threshold(total, 0.6) && avgCred > 0.6:
		verdict = model.VerdictLikelyTrue
		confidence = min(0.9, avgCred)
		rationale = []string{
			fmt.Sprintf("%d/%d sources mention the claim or related keywords.", support, total),
			fmt.Sprintf("Average source credibility is %.2f. Top sources support the claim.", avgCred),
			"No strong contradictory language found in majority of sources.",
		}

	case contradict >= threshold(total, 0.5):
		verdict = model.VerdictLikelyFalse
		confidence = min(0.85, 0.5+avgCred/2)
		rationale = []string{
			fmt.Sprintf("%d/%d sources contain language indicating the claim was refuted or denied.", contradict, total),
			fmt.Sprintf("Average source credibility is %.2f.", avgCred),
			"Contradictory phrasing suggests claim is likely false or misrepresented.",
		}

	default:
		verdict = model.VerdictUncertain
		confidence = min(0.6, avgCred)
		rationale = []string{
			"Evidence is mixed or insufficient to make a confident call.",
			fmt.Sprintf("%d/%d sources mention claim keywords; %d show refutation-like language.", support, total, contradict),
			"Consider more specific search terms or primary sources.",
		}
	}

	return model.VerdictResult{
		Verdict:      verdict,
		Confidence:   confidence,
		Rationale:    rationale,
		CitedSources: cited,
	}
}

// threshold returns the document count a signal must reach, at least 1
func threshold(total int, fraction float64) int {
	return max(1, int(math.Ceil(float64(total)*fraction)))
}

// claimKeywords extracts lowercased tokens longer than three characters
func claimKeywords(claim string) []string {
	var keywords []string
	for _, token := range wordRe.FindAllString(claim, -1) {
		if len(token) > 3 {
			keywords = append(keywords, strings.ToLower(token))
		}
	}
	return keywords
}

// docExcerpt is a short quote for citation: document text, falling back to
// the title when extraction produced nothing.
func docExcerpt(doc model.Document) string {
	text := doc.Text
	if text == "" {
		text = doc.Title
	}
	return truncate(text, maxExcerptChars)
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
