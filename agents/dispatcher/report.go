package dispatcher

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"nba-dispatch/internal/models"
)

// Subject is the fixed subject line for every dispatch email.
const Subject = "NBA Executive Pregame Briefing"

//go:embed report_template.html
var reportTemplateHTML string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateHTML))

var boldMarkdown = regexp.MustCompile(`\*\*(.+?)\*\*`)

type headlineRow struct {
	Headline      string
	Summary       string
	SentimentText string
	BadgeColor    template.CSS
}

type gameRow struct {
	AwayTeam     string
	HomeTeam     string
	ScoreDisplay string
	Status       string
}

type reportData struct {
	Date               string
	BriefingParagraphs []template.HTML
	Headlines          []headlineRow
	Games              []gameRow
}

// RenderReport produces the HTML body and its plain-text equivalent.
func RenderReport(report models.BriefingReport) (htmlBody, textBody string, err error) {
	data := reportData{
		Date:               report.Date.Format("January 2, 2006"),
		BriefingParagraphs: briefingParagraphs(report.Briefing),
		Headlines:          headlineRows(report.Headlines),
		Games:              gameRows(report.Games),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render report template: %w", err)
	}

	return buf.String(), renderText(report), nil
}

// briefingParagraphs escapes each paragraph and then converts markdown
// bold markers, which generation replies sprinkle in, to <strong> tags.
func briefingParagraphs(briefing string) []template.HTML {
	var paragraphs []template.HTML
	for _, p := range strings.Split(briefing, "\n\n") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		escaped := template.HTMLEscapeString(p)
		withBold := boldMarkdown.ReplaceAllString(escaped, "<strong>$1</strong>")
		paragraphs = append(paragraphs, template.HTML(withBold))
	}
	return paragraphs
}

func headlineRows(headlines []models.HeadlineRecord) []headlineRow {
	var rows []headlineRow
	for _, r := range headlines {
		badge := template.CSS("#4CAF50")
		text := fmt.Sprintf("+%.2f", r.Sentiment)
		if r.Sentiment < 0 {
			badge = template.CSS("#F44336")
			text = fmt.Sprintf("%.2f", r.Sentiment)
		}

		summary := r.Summary
		if summary == "" || summary == models.NoSummary {
			summary = r.Description
		}

		rows = append(rows, headlineRow{
			Headline:      r.Headline,
			Summary:       summary,
			SentimentText: text,
			BadgeColor:    badge,
		})
	}
	return rows
}

func gameRows(games []models.GameRecord) []gameRow {
	var rows []gameRow
	for _, g := range games {
		score := "TBD"
		if g.HasStarted() {
			score = fmt.Sprintf("%d - %d", g.AwayScore, g.HomeScore)
		}
		rows = append(rows, gameRow{
			AwayTeam:     g.AwayTeam,
			HomeTeam:     g.HomeTeam,
			ScoreDisplay: score,
			Status:       g.Status,
		})
	}
	return rows
}

// renderText is the unstyled fallback body for clients without HTML.
func renderText(report models.BriefingReport) string {
	var sb strings.Builder
	sb.WriteString(Subject + "\n\n")
	sb.WriteString(report.Briefing + "\n\n")

	sb.WriteString("Top News Headlines:\n")
	if len(report.Headlines) == 0 {
		sb.WriteString("\nNo headlines available.\n")
	} else {
		for _, r := range report.Headlines {
			fmt.Fprintf(&sb, "\n- %s (Sentiment: %.2f)\n", r.Headline, r.Sentiment)
		}
	}

	sb.WriteString("\nToday's Games:\n")
	if len(report.Games) == 0 {
		sb.WriteString("\nNo games scheduled for today.\n")
	} else {
		for _, g := range report.Games {
			fmt.Fprintf(&sb, "\n%s @ %s - %s\n", g.AwayTeam, g.HomeTeam, g.Status)
		}
	}
	return sb.String()
}
