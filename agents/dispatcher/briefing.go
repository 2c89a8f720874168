package dispatcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"nba-dispatch/agents/dispatcher/scraper"
	"nba-dispatch/internal/models"
)

// highlightCount is how many records from each sentiment extreme feed the
// briefing prompt.
const highlightCount = 3

// minParagraphLen filters noise lines when a reply has to be re-split on
// single newlines.
const minParagraphLen = 50

// FallbackBriefing is returned whenever generation fails or produces no
// usable paragraphs. The email must always carry some briefing text.
const FallbackBriefing = `Today's NBA schedule presents several key matchups worth monitoring. Recent news sentiment and injury reports will significantly impact game outcomes and team performance.

The most critical games today feature teams dealing with various challenges, from injury concerns to momentum shifts based on recent performance. Teams with negative news sentiment may face additional pressure, while those with positive momentum could capitalize on their current form.

Executives should pay close attention to games involving teams with significant injury reports or recent roster changes, as these factors often determine game outcomes more than historical matchups.`

// BriefingComposer turns sentiment-tagged headlines and today's games into
// a three-paragraph executive narrative.
type BriefingComposer struct {
	gen    TextGenerator
	logger zerolog.Logger
}

func NewBriefingComposer(gen TextGenerator, logger zerolog.Logger) *BriefingComposer {
	return &BriefingComposer{
		gen:    gen,
		logger: logger.With().Str("component", "briefing").Logger(),
	}
}

// Compose always returns briefing text: the generated narrative normalized
// to at most three paragraphs, or the static fallback.
func (b *BriefingComposer) Compose(ctx context.Context, news []models.HeadlineRecord, games []models.GameRecord) string {
	b.logger.Info().Int("headlines", len(news)).Int("games", len(games)).Msg("generating executive briefing")

	prompt := buildBriefingPrompt(news, games)
	reply, err := b.gen.GenerateText(ctx, prompt)
	if err != nil {
		b.logger.Error().Err(err).Msg("briefing generation failed, using fallback")
		return FallbackBriefing
	}

	paragraphs := normalizeParagraphs(reply)
	if len(paragraphs) == 0 {
		b.logger.Warn().Msg("briefing reply had no usable paragraphs, using fallback")
		return FallbackBriefing
	}

	return strings.Join(paragraphs, "\n\n")
}

func buildBriefingPrompt(news []models.HeadlineRecord, games []models.GameRecord) string {
	return fmt.Sprintf(`Write a 3-paragraph Executive Pregame Briefing for today's NBA games.

Focus on:
1. Injury impacts and how they affect today's matchups
2. High-stakes storylines based on recent news sentiment
3. The most important games to watch and why

%s

%s

%s

Write a professional, concise 3-paragraph briefing that executives can quickly read. Each paragraph should be 3-5 sentences. Focus on actionable insights about injuries, team momentum, and game importance.`,
		newsDigest(news), gamesDigest(games), storylineDigest(news, games))
}

// newsDigest lists up to three headlines from each sentiment extreme.
func newsDigest(news []models.HeadlineRecord) string {
	if len(news) == 0 {
		return "No news headlines available today."
	}

	byAscending := make([]models.HeadlineRecord, len(news))
	copy(byAscending, news)
	sort.SliceStable(byAscending, func(i, j int) bool {
		return byAscending[i].Sentiment < byAscending[j].Sentiment
	})

	n := highlightCount
	if len(byAscending) < n {
		n = len(byAscending)
	}

	var sb strings.Builder
	sb.WriteString("Top News Headlines:\n")
	sb.WriteString("\nNegative Sentiment News:\n")
	for _, r := range byAscending[:n] {
		writeDigestLine(&sb, r)
	}
	sb.WriteString("\nPositive Sentiment News:\n")
	for i := 0; i < n; i++ {
		writeDigestLine(&sb, byAscending[len(byAscending)-1-i])
	}
	return sb.String()
}

func writeDigestLine(sb *strings.Builder, r models.HeadlineRecord) {
	team := r.Team
	if team == "" {
		team = "N/A"
	}
	fmt.Fprintf(sb, "- %s (Sentiment: %.2f, Team: %s)\n", r.Headline, r.Sentiment, team)
}

func gamesDigest(games []models.GameRecord) string {
	if len(games) == 0 {
		return "No games scheduled for today.\n"
	}

	var sb strings.Builder
	sb.WriteString("Today's Games:\n")
	for _, g := range games {
		fmt.Fprintf(&sb, "- %s @ %s (Status: %s", g.AwayTeam, g.HomeTeam, g.Status)
		if g.HasStarted() {
			fmt.Fprintf(&sb, ", Score: %s %d - %s %d", g.AwayTeam, g.AwayScore, g.HomeTeam, g.HomeScore)
		}
		sb.WriteString(")\n")
	}
	return sb.String()
}

// storylineDigest cross-references news against teams playing today. The
// scoreboard feed uses short names ("Lakers") while inferred teams are full
// names, so schedule names are canonicalized through the same keyword table
// before the intersection; unmatchable names compare verbatim.
func storylineDigest(news []models.HeadlineRecord, games []models.GameRecord) string {
	var sb strings.Builder
	sb.WriteString("Relevant Storylines (News matching teams playing today):\n")

	playing := make(map[string]bool)
	for _, g := range games {
		playing[canonicalTeam(g.HomeTeam)] = true
		playing[canonicalTeam(g.AwayTeam)] = true
	}

	matched := false
	for _, r := range news {
		if r.Team != "" && playing[r.Team] {
			fmt.Fprintf(&sb, "- %s (Team: %s, Sentiment: %.2f)\n", r.Headline, r.Team, r.Sentiment)
			matched = true
		}
	}

	if !matched {
		sb.WriteString("- No direct news matches for teams playing today.\n")
	}
	return sb.String()
}

func canonicalTeam(name string) string {
	if canonical := scraper.MatchTeam(name); canonical != "" {
		return canonical
	}
	return name
}

// normalizeParagraphs shapes a reply into at most three paragraphs: split
// on blank lines first, and when that yields fewer than three, re-split on
// single newlines keeping only substantial lines.
func normalizeParagraphs(reply string) []string {
	var paragraphs []string
	for _, p := range strings.Split(reply, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	if len(paragraphs) < 3 {
		var lines []string
		for _, l := range strings.Split(reply, "\n") {
			if l = strings.TrimSpace(l); len(l) > minParagraphLen {
				lines = append(lines, l)
			}
		}
		paragraphs = lines
	}

	if len(paragraphs) > 3 {
		paragraphs = paragraphs[:3]
	}
	return paragraphs
}
