// Package dispatcher implements the daily NBA briefing agent: scrape
// headlines, score sentiment, fetch the scoreboard, compose a briefing,
// and email the report.
package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nba-dispatch/agents/dispatcher/scoreboard"
	"nba-dispatch/agents/dispatcher/scraper"
	"nba-dispatch/internal/models"
	"nba-dispatch/shared/ai"
	"nba-dispatch/shared/config"
	"nba-dispatch/shared/email"
	"nba-dispatch/shared/monitoring"
)

// DispatchMetrics describes one run for the monitor.
type DispatchMetrics struct {
	Headlines  int
	Analyzed   int
	Games      int
	Storylines int
}

func (m DispatchMetrics) GetSummary() string {
	return fmt.Sprintf("scraped %d headlines, analyzed %d, %d games, %d storyline matches",
		m.Headlines, m.Analyzed, m.Games, m.Storylines)
}

// Agent wires the pipeline together. Steps run strictly in sequence; the
// headline records are handed off linearly from collector to analyzer to
// composer, with a single owner at a time.
type Agent struct {
	config  *config.Config
	logger  zerolog.Logger
	monitor *monitoring.Monitor

	generator  *ai.Generator
	headlines  *scraper.Collector
	scoreboard *scoreboard.Collector
	analyzer   *SentimentAnalyzer
	composer   *BriefingComposer
	sender     *email.Sender
}

func New(cfg *config.Config, logger zerolog.Logger) *Agent {
	return &Agent{
		config:  cfg,
		logger:  logger.With().Str("component", "dispatcher").Logger(),
		monitor: monitoring.NewMonitor(logger),
	}
}

func (a *Agent) Name() string {
	return "NBA Dispatcher"
}

// Healthy reports whether the most recent run succeeded.
func (a *Agent) Healthy() bool {
	return a.monitor.IsHealthy()
}

// Initialize builds every collaborator. The generation model probe runs
// here, so a fully unavailable backend fails the run before any scraping.
func (a *Agent) Initialize(ctx context.Context) error {
	a.logger.Info().Str("agent", a.Name()).Msg("initializing")

	if a.generator == nil {
		gen, err := ai.NewGenerator(ctx, &a.config.AI, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create text generator: %w", err)
		}
		a.generator = gen
		a.logger.Info().Str("model", gen.Model()).Msg("text generator ready")
	}

	if a.headlines == nil {
		a.headlines = scraper.NewCollector(&a.config.News, a.logger)
	}
	if a.scoreboard == nil {
		a.scoreboard = scoreboard.NewCollector(&a.config.Scoreboard, a.logger)
	}
	if a.analyzer == nil {
		a.analyzer = NewSentimentAnalyzer(a.generator, a.logger)
	}
	if a.composer == nil {
		a.composer = NewBriefingComposer(a.generator, a.logger)
	}
	if a.sender == nil {
		a.sender = email.NewSender(&a.config.Email, a.logger)
	}

	return nil
}

// RunOnce executes one full dispatch. Scrape and scoreboard failures
// degrade to empty collections; only rendering or delivery failures make
// the run fail.
func (a *Agent) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	a.monitor.BeginRun()

	news := a.headlines.Collect(ctx, a.config.News.HeadlineLimit)
	if len(news) == 0 {
		a.monitor.RecordPartialFailure(fmt.Errorf("no headlines scraped, continuing with empty set"), time.Since(startTime))
	}

	games := a.scoreboard.Collect(ctx)
	if len(games) == 0 {
		a.logger.Warn().Msg("no games found for today")
	}

	if len(news) > 0 {
		news = a.analyzer.Analyze(ctx, news)
	}

	report := models.BriefingReport{
		Date:      time.Now(),
		Briefing:  a.composer.Compose(ctx, news, games),
		Headlines: news,
		Games:     games,
	}

	htmlBody, textBody, err := RenderReport(report)
	if err != nil {
		a.monitor.RecordCriticalFailure(err, time.Since(startTime))
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := a.sender.Send(Subject, htmlBody, textBody); err != nil {
		a.monitor.RecordCriticalFailure(err, time.Since(startTime))
		return fmt.Errorf("failed to deliver report: %w", err)
	}

	a.monitor.RecordSuccess(DispatchMetrics{
		Headlines:  len(news),
		Analyzed:   len(news),
		Games:      len(games),
		Storylines: countStorylines(news, games),
	}, time.Since(startTime))

	return nil
}

// countStorylines mirrors the briefing cross-reference: news whose inferred
// team is playing today.
func countStorylines(news []models.HeadlineRecord, games []models.GameRecord) int {
	playing := make(map[string]bool)
	for _, g := range games {
		playing[canonicalTeam(g.HomeTeam)] = true
		playing[canonicalTeam(g.AwayTeam)] = true
	}

	count := 0
	for _, r := range news {
		if r.Team != "" && playing[r.Team] {
			count++
		}
	}
	return count
}
