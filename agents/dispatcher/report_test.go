package dispatcher

import (
	"strings"
	"testing"
	"time"

	"nba-dispatch/internal/models"
)

func sampleReport() models.BriefingReport {
	return models.BriefingReport{
		Date:     time.Date(2026, time.January, 15, 8, 0, 0, 0, time.UTC),
		Briefing: "First paragraph with **key insight** for today.\n\nSecond paragraph of analysis.",
		Headlines: []models.HeadlineRecord{
			{Headline: "Warriors surge continues", Summary: "Golden State keeps winning.", Sentiment: 0.85},
			{Headline: "Injury blow for the Heat", Summary: "Starter out several weeks.", Sentiment: -0.6},
		},
		Games: []models.GameRecord{
			{HomeTeam: "Lakers", AwayTeam: "Warriors", Status: "7:00 pm ET"},
			{HomeTeam: "Celtics", AwayTeam: "Knicks", HomeScore: 101, AwayScore: 99, Status: "Final"},
		},
	}
}

func TestRenderReportHTML(t *testing.T) {
	htmlBody, _, err := RenderReport(sampleReport())
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	checks := []string{
		"NBA Intelligence Dispatch",
		"January 15, 2026",
		"<strong>key insight</strong>",
		"Warriors surge continues",
		"+0.85",
		"#4CAF50", // positive badge
		"-0.60",
		"#F44336", // negative badge
		"99 - 101",
		"TBD",
		"Final",
	}
	for _, want := range checks {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("HTML body missing %q", want)
		}
	}
}

func TestRenderReportEscapesMarkup(t *testing.T) {
	report := sampleReport()
	report.Headlines[0].Headline = `Star says "<script>alert(1)</script>"`

	htmlBody, _, err := RenderReport(report)
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if strings.Contains(htmlBody, "<script>alert(1)</script>") {
		t.Error("headline markup was not escaped")
	}
	if !strings.Contains(htmlBody, "&lt;script&gt;") {
		t.Error("expected escaped script tag in output")
	}
}

func TestRenderReportSummaryFallsBackToDescription(t *testing.T) {
	report := sampleReport()
	report.Headlines[0].Summary = models.NoSummary
	report.Headlines[0].Description = "Listing blurb stands in"

	htmlBody, _, err := RenderReport(report)
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if !strings.Contains(htmlBody, "Listing blurb stands in") {
		t.Error("summary sentinel should fall back to the description")
	}
}

func TestRenderReportEmptySections(t *testing.T) {
	report := models.BriefingReport{
		Date:     time.Now(),
		Briefing: FallbackBriefing,
	}

	htmlBody, textBody, err := RenderReport(report)
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if !strings.Contains(htmlBody, "No headlines available.") {
		t.Error("HTML missing empty-headlines sentinel")
	}
	if !strings.Contains(htmlBody, "No games scheduled for today.") {
		t.Error("HTML missing empty-games sentinel")
	}
	if !strings.Contains(textBody, "No headlines available.") || !strings.Contains(textBody, "No games scheduled for today.") {
		t.Error("text body missing empty-section sentinels")
	}
}

func TestRenderReportText(t *testing.T) {
	_, textBody, err := RenderReport(sampleReport())
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	checks := []string{
		Subject,
		"First paragraph with **key insight** for today.",
		"- Warriors surge continues (Sentiment: 0.85)",
		"- Injury blow for the Heat (Sentiment: -0.60)",
		"Warriors @ Lakers - 7:00 pm ET",
		"Knicks @ Celtics - Final",
	}
	for _, want := range checks {
		if !strings.Contains(textBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
	if strings.Contains(textBody, "<") {
		t.Error("text body should contain no markup")
	}
}
