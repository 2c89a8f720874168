package dispatcher

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"nba-dispatch/internal/models"
)

// TextGenerator is the single capability the analysis steps need from the
// AI layer: one prompt in, one reply out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// minArticleLen is the threshold above which extracted article text is
// preferred over the listing description as analysis input.
const minArticleLen = 50

// maxSummaryLen bounds the stored summary in characters, not bytes;
// longer model replies are truncated with an ellipsis.
const maxSummaryLen = 500

var (
	sentimentTag = regexp.MustCompile(`(?i)SENTIMENT:\s*(-?\d+\.?\d*)`)
	anyNumber    = regexp.MustCompile(`-?\d+\.?\d*`)
	summaryTag   = regexp.MustCompile(`(?i)SUMMARY:\s*([^\n]+)`)
)

// SentimentAnalyzer scores each headline in [-1.0, 1.0] and attaches a
// bounded summary, one generation call per record.
type SentimentAnalyzer struct {
	gen    TextGenerator
	logger zerolog.Logger
}

func NewSentimentAnalyzer(gen TextGenerator, logger zerolog.Logger) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		gen:    gen,
		logger: logger.With().Str("component", "sentiment").Logger(),
	}
}

// Analyze populates Sentiment and Summary on every record. Calls are
// strictly sequential: the generation API's per-minute budget matches the
// headline limit, so pacing comes from batch size alone. A failed record
// gets neutral defaults and the batch continues.
func (a *SentimentAnalyzer) Analyze(ctx context.Context, records []models.HeadlineRecord) []models.HeadlineRecord {
	a.logger.Info().Int("count", len(records)).Msg("analyzing headline sentiment")

	for i := range records {
		record := &records[i]

		if record.Headline == "" {
			a.logger.Warn().Int("index", i).Msg("empty headline, assigning neutral sentiment")
			record.Sentiment = 0.0
			record.Summary = models.NoSummary
			continue
		}

		reply, err := a.gen.GenerateText(ctx, buildSentimentPrompt(*record))
		if err != nil {
			a.logger.Error().Int("index", i).Str("headline", record.Headline).Err(err).
				Msg("generation failed for headline")
			record.Sentiment = 0.0
			record.Summary = models.SummaryError
			continue
		}

		reply = strings.TrimSpace(reply)
		record.Sentiment = parseSentiment(reply)
		record.Summary = parseSummary(reply)
	}

	return records
}

// buildSentimentPrompt asks for both tagged fields in one call. Article
// text is used when the extractor got something substantial, otherwise the
// listing description stands in.
func buildSentimentPrompt(record models.HeadlineRecord) string {
	content := record.Description
	if utf8.RuneCountInString(record.ArticleContent) > minArticleLen {
		content = record.ArticleContent
	}

	return fmt.Sprintf(`Analyze this NBA news article and provide:
1. A sentiment score from -1.0 (bad news/injuries) to 1.0 (good news/hype) as a float
2. A detailed 5-sentence summary of what this news is about, including key details, context, and implications

Headline: %s
Article Content: %s

Format your response exactly as:
SENTIMENT: [score]
SUMMARY: [5-sentence summary covering key details, context, and implications]`, record.Headline, content)
}

// parseSentiment finds the tagged score, falling back to the first
// number-looking substring anywhere in the reply. The result is always
// clamped to [-1.0, 1.0]; replies with no number at all score 0.0.
func parseSentiment(reply string) float64 {
	if m := sentimentTag.FindStringSubmatch(reply); m != nil {
		if score, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clampSentiment(score)
		}
	}

	if m := anyNumber.FindString(reply); m != "" {
		if score, err := strconv.ParseFloat(m, 64); err == nil {
			return clampSentiment(score)
		}
	}

	return 0.0
}

// parseSummary recovers the summary through three levels: the SUMMARY tag,
// then the line after a SENTIMENT line, then the last non-empty line.
func parseSummary(reply string) string {
	summary := ""

	if m := summaryTag.FindStringSubmatch(reply); m != nil {
		summary = m[1]
	} else {
		lines := strings.Split(reply, "\n")
		for i, line := range lines {
			if strings.Contains(strings.ToUpper(line), "SENTIMENT") && i+1 < len(lines) {
				summary = strings.TrimSpace(lines[i+1])
				break
			}
		}
		if summary == "" {
			for i := len(lines) - 1; i >= 0; i-- {
				if line := strings.TrimSpace(lines[i]); line != "" {
					summary = line
					break
				}
			}
		}
	}

	summary = strings.TrimSpace(strings.ReplaceAll(summary, "SUMMARY:", ""))
	if summary == "" {
		return models.NoSummary
	}
	if utf8.RuneCountInString(summary) > maxSummaryLen {
		summary = string([]rune(summary)[:maxSummaryLen]) + "..."
	}
	return summary
}

func clampSentiment(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < -1.0 {
		return -1.0
	}
	return score
}
