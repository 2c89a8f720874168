package models

import "time"

// BriefingReport aggregates everything that goes into one outbound email.
type BriefingReport struct {
	Date      time.Time        `json:"date"`
	Briefing  string           `json:"briefing"` // three-paragraph narrative
	Headlines []HeadlineRecord `json:"headlines"`
	Games     []GameRecord     `json:"games"`
}
