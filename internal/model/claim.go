package model

// NewsItem is a single entry returned by the news search. Items are
// transient: they exist only for the duration of one verification run.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"` // raw feed timestamp, may be empty
	Source    string `json:"source,omitempty"`    // publisher name, may be empty
}
