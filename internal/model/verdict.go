package model

import "strings"

// Verdict classifies how well the evidence supports a claim
type Verdict string

const (
	VerdictLikelyTrue  Verdict = "Likely True"
	VerdictLikelyFalse Verdict = "Likely False"
	VerdictUncertain   Verdict = "Uncertain"
)

// NormalizeVerdict maps free-form verdict text onto one of the three
// canonical verdicts. Anything unrecognizable is Uncertain.
func NormalizeVerdict(s string) Verdict {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(lower, "true"):
		return VerdictLikelyTrue
	case strings.Contains(lower, "false"):
		return VerdictLikelyFalse
	default:
		return VerdictUncertain
	}
}

// Relevance grades how strongly a cited source bears on the claim
type Relevance string

const (
	RelevanceLow  Relevance = "low"
	RelevanceMed  Relevance = "med"
	RelevanceHigh Relevance = "high"
)

// NormalizeRelevance maps free-form relevance text onto a known grade,
// defaulting to med.
func NormalizeRelevance(s string) Relevance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RelevanceLow
	case "high":
		return RelevanceHigh
	default:
		return RelevanceMed
	}
}

// CitedSource is a reference from the rationale back to a Document by
// index. Idx may not resolve against the documents of the run; consumers
// skip dangling references rather than treating them as errors.
type CitedSource struct {
	Idx            int       `json:"idx"`
	QuoteOrSummary string    `json:"quote_or_summary"`
	Relevance      Relevance `json:"relevance"`
}

// VerdictResult is the structured outcome of a verification run. It is
// created once by whichever reasoner path executed and never mutated.
type VerdictResult struct {
	Verdict      Verdict       `json:"verdict"`
	Confidence   float64       `json:"confidence"` // always within [0,1]
	Rationale    []string      `json:"rationale"`
	CitedSources []CitedSource `json:"cited_sources"`
}
