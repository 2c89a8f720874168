// Package scoreboard normalizes the NBA live scoreboard feed into game
// records for today's slate.
package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"nba-dispatch/internal/models"
	"nba-dispatch/shared/config"
)

// scoreboardResponse mirrors the live scoreboard JSON feed.
type scoreboardResponse struct {
	Scoreboard struct {
		GameDate string `json:"gameDate"`
		Games    []struct {
			GameID         string   `json:"gameId"`
			GameStatusText string   `json:"gameStatusText"`
			HomeTeam       teamSide `json:"homeTeam"`
			AwayTeam       teamSide `json:"awayTeam"`
		} `json:"games"`
	} `json:"scoreboard"`
}

type teamSide struct {
	TeamName string `json:"teamName"`
	Score    *int   `json:"score"` // null before tip-off
}

type Collector struct {
	cfg    *config.ScoreboardConfig
	client *http.Client
	logger zerolog.Logger
}

func NewCollector(cfg *config.ScoreboardConfig, logger zerolog.Logger) *Collector {
	return &Collector{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.With().Str("component", "scoreboard").Logger(),
	}
}

// Collect returns today's games in source order. Source failures and empty
// slates both yield an empty slice; callers treat that as a valid state.
func (c *Collector) Collect(ctx context.Context) []models.GameRecord {
	c.logger.Info().Msg("fetching today's scoreboard")

	resp, err := c.fetch(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("scoreboard fetch failed")
		return nil
	}

	today := time.Now().Format("2006-01-02")
	var games []models.GameRecord
	for _, g := range resp.Scoreboard.Games {
		status := g.GameStatusText
		if status == "" {
			status = "Scheduled"
		}

		games = append(games, models.GameRecord{
			HomeTeam:  g.HomeTeam.TeamName,
			AwayTeam:  g.AwayTeam.TeamName,
			HomeScore: scoreOrZero(g.HomeTeam.Score),
			AwayScore: scoreOrZero(g.AwayTeam.Score),
			Status:    status,
			GameID:    g.GameID,
			GameDate:  today,
		})
	}

	if len(games) == 0 {
		c.logger.Info().Msg("no games scheduled for today")
		return nil
	}

	c.logger.Info().Int("count", len(games)).Msg("scoreboard fetched")
	return games
}

func (c *Collector) fetch(ctx context.Context) (*scoreboardResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoreboard request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreboard returned status %d", resp.StatusCode)
	}

	var sb scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard response: %w", err)
	}
	return &sb, nil
}

func scoreOrZero(score *int) int {
	if score == nil || *score < 0 {
		return 0
	}
	return *score
}
