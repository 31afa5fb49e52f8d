package reason

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmarchuk/claimcheck/internal/model"
)

// Layered recovery of a structured verdict from free-form model output.
// Each layer runs only if the previous one produced nothing, and the final
// salvage layer always produces a valid result, so the reasoner terminates
// with something usable no matter how malformed the text is.

var (
	fenceRe      = regexp.MustCompile("(?s)^```(?:json)?\\s*|\\s*```$")
	verdictRe    = regexp.MustCompile(`(?i)likely true|likely false|uncertain`)
	percentRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	confidenceRe = regexp.MustCompile(`(?i)confidence[:\s]+([01](?:\.\d+)?)`)
	bulletRe     = regexp.MustCompile(`\n|-\s+`)
)

// ParseModelOutput recovers a structured verdict from raw model text. It
// strips code fences, locates the first object-looking span, parses it
// strictly, then with quote repair, and normalizes whatever came out.
// Returns nil when no structured object can be recovered at all; callers
// then fall through to Salvage.
func ParseModelOutput(raw string) *model.VerdictResult {
	obj := extractObject(raw)
	if obj == nil {
		return nil
	}
	return normalizeObject(obj)
}

func extractObject(raw string) map[string]any {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	text = strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	span := text
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			span = text[start : end+1]
		}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err == nil {
		return obj
	}

	// Repaired parse: models sometimes emit single-quoted pseudo-JSON.
	// Best effort; failure here just means no structured object.
	fixed := strings.ReplaceAll(span, "'", "\"")
	if err := json.Unmarshal([]byte(fixed), &obj); err == nil {
		return obj
	}

	return nil
}

func normalizeObject(obj map[string]any) *model.VerdictResult {
	result := &model.VerdictResult{
		Verdict:      model.VerdictUncertain,
		Confidence:   0.5,
		Rationale:    []string{},
		CitedSources: []model.CitedSource{},
	}

	if v, ok := obj["verdict"].(string); ok {
		result.Verdict = model.NormalizeVerdict(v)
	}

	result.Confidence = coerceConfidence(obj["confidence"])

	rationale := obj["rationale"]
	if rationale == nil {
		rationale = obj["reasoning"]
	}
	switch v := rationale.(type) {
	case string:
		result.Rationale = splitRationale(v)
	case []any:
		for _, entry := range v {
			line := strings.TrimSpace(fmt.Sprint(entry))
			if line != "" {
				result.Rationale = append(result.Rationale, line)
			}
		}
	}

	result.CitedSources = coerceCited(obj["cited_sources"])

	return result
}

// coerceConfidence accepts numbers, numeric strings, and percentage
// strings; anything else defaults to 0.5.
func coerceConfidence(v any) float64 {
	switch n := v.(type) {
	case float64:
		return clamp01(n)
	case string:
		s := strings.TrimSpace(n)
		percent := strings.HasSuffix(s, "%")
		s = strings.TrimSuffix(s, "%")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if percent {
				f /= 100
			}
			return clamp01(f)
		}
	}
	return 0.5
}

// splitRationale breaks a single rationale string into a list on newlines
// or dash-bullet markers.
func splitRationale(s string) []string {
	var out []string
	for _, part := range bulletRe.Split(s, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func coerceCited(v any) []model.CitedSource {
	list, ok := v.([]any)
	if !ok {
		return []model.CitedSource{}
	}

	cited := make([]model.CitedSource, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		cs := model.CitedSource{Relevance: model.RelevanceMed}
		switch idx := m["idx"].(type) {
		case float64:
			cs.Idx = int(idx)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(idx)); err == nil {
				cs.Idx = n
			}
		}
		if quote, ok := m["quote_or_summary"].(string); ok {
			cs.QuoteOrSummary = truncate(quote, maxExcerptChars)
		}
		if rel, ok := m["relevance"].(string); ok {
			cs.Relevance = model.NormalizeRelevance(rel)
		}

		cited = append(cited, cs)
	}

	return cited
}

// Salvage builds a usable result from completely unstructured model text:
// verdict phrase scan, percentage or explicit confidence scan, first three
// non-empty lines as rationale, cited sources synthesized from the first
// documents given to the reasoner.
func Salvage(raw string, docs []model.Document) model.VerdictResult {
	verdict := model.VerdictUncertain
	if match := verdictRe.FindString(raw); match != "" {
		verdict = model.NormalizeVerdict(match)
	}

	confidence := 0.5
	if m := percentRe.FindStringSubmatch(raw); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			confidence = clamp01(f / 100)
		}
	} else if m := confidenceRe.FindStringSubmatch(raw); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			confidence = clamp01(f)
		}
	}

	var rationale []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rationale = append(rationale, line)
		}
		if len(rationale) == 3 {
			break
		}
	}
	if len(rationale) == 0 {
		rationale = []string{"Model returned text that could not be parsed."}
	}

	cited := make([]model.CitedSource, 0, 3)
	for _, doc := range docs {
		if len(cited) == 3 {
			break
		}
		cited = append(cited, model.CitedSource{
			Idx:            doc.Idx,
			QuoteOrSummary: docExcerpt(doc),
			Relevance:      model.RelevanceMed,
		})
	}

	return model.VerdictResult{
		Verdict:      verdict,
		Confidence:   confidence,
		Rationale:    rationale,
		CitedSources: cited,
	}
}

func clamp01(f float64) float64 {
	return max(0, min(f, 1))
}
