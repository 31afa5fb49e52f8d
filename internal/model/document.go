package model

// Document is one unit of evidence: a news item joined with its extracted
// body text and credibility score. Idx is 1-based and follows retrieval
// order, so it is stable across runs over the same feed and usable as a
// citation target.
type Document struct {
	Idx         int     `json:"idx"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Published   string  `json:"published,omitempty"` // raw feed timestamp
	Source      string  `json:"source,omitempty"`
	Text        string  `json:"text"`        // empty when extraction failed
	Credibility float64 `json:"credibility"` // always within [0,1]
}
