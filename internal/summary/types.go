// Package summary generates, normalizes, and caches AI book summaries.
package summary

// Request carries everything the summarizer needs for one book.
type Request struct {
	Title         string   `json:"title" binding:"required"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	DesiredWords  int      `json:"desiredWords"`
	Tolerance     float64  `json:"tolerance"`
	Language      string   `json:"language"`
}

// Suggestion is one similar-book recommendation.
type Suggestion struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// Result is the normalized summary shape. A Result only exists with a
// non-empty Summary; every other field degrades to an empty value when the
// model omits or mangles it.
type Result struct {
	Summary           string       `json:"summary"`
	ReadersTakeaway   []string     `json:"readers_takeaway"`
	ReadersSuggestion []Suggestion `json:"readers_suggestion"`
	ReadersTreat      string       `json:"readers_treat"`
}
