package score

import "strings"

// Domain floor scores. Patterns are matched as case-insensitive substrings
// of the URL; a match raises the running score to at least the floor, so
// multiple matches compose via max, never sum.
var domainFloors = map[string]float64{
	"reuters.com":     0.95,
	"ap.org":          0.95,
	"bbc.com":         0.9,
	"bbc.co.uk":       0.9,
	"nytimes.com":     0.9,
	"theguardian.com": 0.9,
	"wsj.com":         0.9,
	".gov":            0.95,
	".edu":            0.9,
	".ac.uk":          0.9,
	".edu.au":         0.9,
	"who.int":         0.95,
	"un.org":          0.95,
	"nasa.gov":        0.95,
	"nih.gov":         0.95,
}

// Phrases that indicate evidentiary content
var evidentiaryPhrases = []string{
	"study",
	"research",
	"data",
	"according to",
	"experts say",
}

const (
	baseScore        = 0.5
	lengthBonus      = 0.10
	lengthThreshold  = 200 // words
	evidentiaryBonus = 0.05
)

// Credibility rates a source in [0,1] from its URL and extracted text.
// Pure function: no I/O, deterministic.
func Credibility(url, text string) float64 {
	credibility := baseScore
	urlLower := strings.ToLower(url)

	for pattern, floor := range domainFloors {
		if strings.Contains(urlLower, pattern) && floor > credibility {
			credibility = floor
		}
	}

	if len(strings.Fields(text)) > lengthThreshold {
		credibility = min(credibility+lengthBonus, 1.0)
	}

	textLower := strings.ToLower(text)
	for _, phrase := range evidentiaryPhrases {
		if strings.Contains(textLower, phrase) {
			credibility = min(credibility+evidentiaryBonus, 1.0)
			break
		}
	}

	return max(0, min(credibility, 1))
}
