package monitoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Metrics is implemented by agents to describe what a run accomplished.
type Metrics interface {
	GetSummary() string
}

// Monitor records run outcomes. Each run gets its own ID so log lines from
// one dispatch can be correlated.
type Monitor struct {
	logger zerolog.Logger

	runID          string
	lastRunSuccess bool
	lastRunTime    time.Time
}

func NewMonitor(logger zerolog.Logger) *Monitor {
	return &Monitor{
		logger: logger.With().Str("component", "monitor").Logger(),
	}
}

// BeginRun assigns a fresh run ID and returns it.
func (m *Monitor) BeginRun() string {
	m.runID = uuid.NewString()
	m.logger.Info().Str("run_id", m.runID).Msg("run started")
	return m.runID
}

func (m *Monitor) RecordSuccess(metrics Metrics, duration time.Duration) {
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()

	m.logger.Info().
		Str("run_id", m.runID).
		Str("summary", metrics.GetSummary()).
		Dur("duration", duration).
		Msg("run completed")
}

// RecordPartialFailure notes a degraded step without marking the run failed.
func (m *Monitor) RecordPartialFailure(err error, duration time.Duration) {
	m.logger.Warn().
		Str("run_id", m.runID).
		Err(err).
		Dur("duration", duration).
		Msg("partial failure")
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()

	m.logger.Error().
		Str("run_id", m.runID).
		Err(err).
		Dur("duration", duration).
		Msg("run failed")
}

func (m *Monitor) IsHealthy() bool {
	if m.lastRunTime.IsZero() {
		return true // no runs yet
	}
	return m.lastRunSuccess
}
