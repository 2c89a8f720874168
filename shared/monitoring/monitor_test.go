package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubMetrics struct{ summary string }

func (s stubMetrics) GetSummary() string { return s.summary }

func TestBeginRunAssignsUniqueIDs(t *testing.T) {
	m := NewMonitor(zerolog.Nop())

	first := m.BeginRun()
	second := m.BeginRun()

	if first == "" || second == "" {
		t.Fatal("BeginRun returned an empty run ID")
	}
	if first == second {
		t.Errorf("consecutive runs share ID %s", first)
	}
}

func TestIsHealthyTransitions(t *testing.T) {
	m := NewMonitor(zerolog.Nop())

	if !m.IsHealthy() {
		t.Error("monitor with no runs should report healthy")
	}

	m.BeginRun()
	m.RecordCriticalFailure(errors.New("smtp down"), time.Second)
	if m.IsHealthy() {
		t.Error("monitor should be unhealthy after a critical failure")
	}

	m.BeginRun()
	m.RecordSuccess(stubMetrics{summary: "ok"}, time.Second)
	if !m.IsHealthy() {
		t.Error("monitor should recover after a successful run")
	}
}

func TestPartialFailureKeepsHealth(t *testing.T) {
	m := NewMonitor(zerolog.Nop())

	m.BeginRun()
	m.RecordSuccess(stubMetrics{summary: "ok"}, time.Second)
	m.RecordPartialFailure(errors.New("scoreboard unreachable"), time.Second)

	if !m.IsHealthy() {
		t.Error("partial failure should not flip health")
	}
}
