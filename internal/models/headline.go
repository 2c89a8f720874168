package models

import "time"

// HeadlineRecord is a single scraped news item. Sentiment and Summary are
// zero-valued until the sentiment analyzer populates them.
type HeadlineRecord struct {
	Headline       string    `json:"headline"`
	Description    string    `json:"description"`
	Link           string    `json:"link"`
	Date           time.Time `json:"date"`
	Team           string    `json:"team"` // canonical team name, empty when unmatched
	ArticleContent string    `json:"article_content"`

	Sentiment float64 `json:"sentiment"` // always within [-1.0, 1.0]
	Summary   string  `json:"summary"`   // at most 500 chars plus ellipsis
}

const (
	// DefaultDescription stands in when the listing page offers no blurb.
	DefaultDescription = "No description available"

	// NoSummary is assigned when a record is skipped without a generation call.
	NoSummary = "No summary available"

	// SummaryError is assigned when generation or parsing fails for a record.
	SummaryError = "Error generating summary"
)
