package models

// GameRecord is one matchup from today's scoreboard. Records are immutable
// once constructed and kept in the order the source returned them.
type GameRecord struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"` // 0 when the game has not started
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"` // "Scheduled", "Final", or a clock string
	GameID    string `json:"game_id"`
	GameDate  string `json:"game_date"` // YYYY-MM-DD
}

// HasStarted reports whether either side has scored.
func (g GameRecord) HasStarted() bool {
	return g.HomeScore > 0 || g.AwayScore > 0
}
