package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// substantialLen is the minimum concatenated text length for a selector
// strategy to be accepted as real article content.
const substantialLen = 100

// contentSelectors are tried in order of preference; article pages on the
// source vary in structure depending on article type.
var contentSelectors = []string{
	".article-body",
	`[data-module="ArticleBody"]`,
	".StoryBody",
	"article p",
	".article-content p",
	".article p",
}

var mainContentClass = regexp.MustCompile(`(?i)content|article|story`)

// Extractor pulls best-effort plain-text body content out of article pages.
// Extraction is an enrichment step: every failure path returns "".
type Extractor struct {
	client    *http.Client
	userAgent string
	maxChars  int
	logger    zerolog.Logger
}

func NewExtractor(client *http.Client, userAgent string, maxChars int, logger zerolog.Logger) *Extractor {
	return &Extractor{
		client:    client,
		userAgent: userAgent,
		maxChars:  maxChars,
		logger:    logger.With().Str("component", "article-extractor").Logger(),
	}
}

// Extract fetches the article page and returns up to maxChars of body text,
// or "" when the fetch or parse fails.
func (e *Extractor) Extract(ctx context.Context, articleURL string) string {
	doc, err := e.fetchDocument(ctx, articleURL)
	if err != nil {
		e.logger.Warn().Str("url", articleURL).Err(err).Msg("article fetch failed")
		return ""
	}
	return e.ExtractFromDocument(doc)
}

// ExtractFromDocument runs the selector chain against an already-parsed
// page. The first strategy yielding substantial text wins; otherwise all
// paragraphs under the best-guess main content landmark are collected.
func (e *Extractor) ExtractFromDocument(doc *goquery.Document) string {
	var articleText string

	for _, selector := range contentSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		articleText = joinText(sel)
		if len(articleText) > substantialLen {
			break
		}
	}

	if len(articleText) <= substantialLen {
		if main := e.findMainContent(doc); main != nil {
			articleText = joinText(main.Find("p"))
		}
	}

	articleText = strings.Join(strings.Fields(articleText), " ")
	if utf8.RuneCountInString(articleText) > e.maxChars {
		// maxChars counts characters; byte slicing could split a rune.
		articleText = string([]rune(articleText)[:e.maxChars]) + "..."
	}
	return articleText
}

func (e *Extractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// findMainContent picks a main-content landmark: <main>, then <article>,
// then the first div with a content-ish class name.
func (e *Extractor) findMainContent(doc *goquery.Document) *goquery.Selection {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return main
	}
	if article := doc.Find("article").First(); article.Length() > 0 {
		return article
	}
	divs := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return mainContentClass.MatchString(class)
	})
	if divs.Length() > 0 {
		return divs.First()
	}
	return nil
}

// joinText concatenates the trimmed text of every non-empty element.
func joinText(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}
