package scoreboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"nba-dispatch/shared/config"
)

func newTestCollector(url string) *Collector {
	return NewCollector(&config.ScoreboardConfig{URL: url, TimeoutSeconds: 5}, zerolog.Nop())
}

func serveJSON(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCollectNormalizesGames(t *testing.T) {
	server := serveJSON(t, `{
		"scoreboard": {
			"gameDate": "2026-01-15",
			"games": [
				{
					"gameId": "0022600501",
					"gameStatusText": "Final",
					"homeTeam": {"teamName": "Lakers", "score": 112},
					"awayTeam": {"teamName": "Warriors", "score": 108}
				},
				{
					"gameId": "0022600502",
					"homeTeam": {"teamName": "Celtics"},
					"awayTeam": {"teamName": "Knicks", "score": null}
				}
			]
		}
	}`)

	games := newTestCollector(server.URL).Collect(context.Background())
	if len(games) != 2 {
		t.Fatalf("Collect returned %d games, want 2", len(games))
	}

	final := games[0]
	if final.HomeTeam != "Lakers" || final.AwayTeam != "Warriors" {
		t.Errorf("teams = %s/%s", final.HomeTeam, final.AwayTeam)
	}
	if final.HomeScore != 112 || final.AwayScore != 108 {
		t.Errorf("scores = %d-%d, want 112-108", final.HomeScore, final.AwayScore)
	}
	if final.Status != "Final" {
		t.Errorf("status = %q", final.Status)
	}
	if final.GameID != "0022600501" {
		t.Errorf("game ID = %q", final.GameID)
	}
	if final.GameDate != time.Now().Format("2006-01-02") {
		t.Errorf("game date = %q", final.GameDate)
	}

	// Absent score and status fall back to documented defaults.
	pending := games[1]
	if pending.HomeScore != 0 || pending.AwayScore != 0 {
		t.Errorf("unstarted game scores = %d-%d, want 0-0", pending.HomeScore, pending.AwayScore)
	}
	if pending.Status != "Scheduled" {
		t.Errorf("default status = %q, want Scheduled", pending.Status)
	}
	if pending.HasStarted() {
		t.Error("unstarted game reported as started")
	}
}

func TestCollectEmptySlate(t *testing.T) {
	server := serveJSON(t, `{"scoreboard": {"gameDate": "2026-07-04", "games": []}}`)
	if games := newTestCollector(server.URL).Collect(context.Background()); len(games) != 0 {
		t.Errorf("empty slate returned %d games", len(games))
	}
}

func TestCollectSourceFailures(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer server.Close()
		if games := newTestCollector(server.URL).Collect(context.Background()); games != nil {
			t.Errorf("HTTP failure returned %v, want nil", games)
		}
	})

	t.Run("Malformed body", func(t *testing.T) {
		server := serveJSON(t, `{"scoreboard": `)
		if games := newTestCollector(server.URL).Collect(context.Background()); games != nil {
			t.Errorf("malformed body returned %v, want nil", games)
		}
	})

	t.Run("Unreachable host", func(t *testing.T) {
		if games := newTestCollector("http://127.0.0.1:0/scoreboard").Collect(context.Background()); games != nil {
			t.Errorf("unreachable host returned %v, want nil", games)
		}
	})
}
