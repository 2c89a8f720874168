package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"nba-dispatch/internal/models"
	"nba-dispatch/shared/config"
)

// headlineSelectors are tried in order; the first selector with any matches
// wins. The listing page's markup shifts periodically, hence the chain.
var headlineSelectors = []string{
	`a[data-clamp="2"]`,
	".headlineStack__list a",
	`a[data-module="Article"]`,
	"h2 a",
	"h3 a",
	".contentItem__title a",
}

var descriptionClass = regexp.MustCompile(`(?i)description|summary|excerpt`)

// Collector scrapes ranked headlines from the news listing page and
// enriches each with extracted article text and an inferred team.
type Collector struct {
	cfg       *config.NewsConfig
	client    *http.Client
	extractor *Extractor
	baseURL   string // scheme://host of the listing page
	logger    zerolog.Logger
}

func NewCollector(cfg *config.NewsConfig, logger zerolog.Logger) *Collector {
	client := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
	return &Collector{
		cfg:       cfg,
		client:    client,
		extractor: NewExtractor(client, cfg.UserAgent, cfg.ArticleMaxLen, logger),
		baseURL:   baseOf(cfg.SourceURL),
		logger:    logger.With().Str("component", "headlines").Logger(),
	}
}

// Collect returns at most limit headline records. A failed listing fetch is
// a valid degraded state: the result is empty, never an error.
func (c *Collector) Collect(ctx context.Context, limit int) []models.HeadlineRecord {
	c.logger.Info().Str("url", c.cfg.SourceURL).Msg("scraping headlines")

	doc, err := c.fetchListing(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch news listing")
		return nil
	}

	candidates := c.findHeadlineLinks(doc)
	if candidates.Length() == 0 {
		c.logger.Warn().Msg("no headlines found, page structure may have changed")
		return nil
	}

	var records []models.HeadlineRecord
	candidates.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(records) >= limit {
			return false
		}

		headline := strings.TrimSpace(s.Text())
		if headline == "" {
			return true
		}

		href, _ := s.Attr("href")
		link := c.resolveLink(href)

		description := c.findDescription(s)
		if description == "" {
			description = models.DefaultDescription
		}

		records = append(records, models.HeadlineRecord{
			Headline:       headline,
			Description:    description,
			Link:           link,
			Date:           time.Now(),
			Team:           MatchTeam(headline + " " + description),
			ArticleContent: c.extractor.Extract(ctx, link),
		})
		return true
	})

	c.logger.Info().Int("count", len(records)).Msg("headlines scraped")
	return records
}

func (c *Collector) fetchListing(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// findHeadlineLinks tries each selector strategy, then falls back to every
// anchor whose target is inside the sport section and has visible text.
func (c *Collector) findHeadlineLinks(doc *goquery.Document) *goquery.Selection {
	for _, selector := range headlineSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}

	return doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return strings.Contains(href, c.cfg.SectionPath) && strings.TrimSpace(s.Text()) != ""
	})
}

// resolveLink turns root-relative and bare-relative hrefs into absolute URLs.
func (c *Collector) resolveLink(href string) string {
	switch {
	case strings.HasPrefix(href, "/"):
		return c.baseURL + href
	case !strings.HasPrefix(href, "http"):
		return c.baseURL + "/" + href
	default:
		return href
	}
}

// findDescription looks for a description-like element near the headline
// anchor: first any p/span/div under the parent with a description-ish
// class, then the next sibling of those tags.
func (c *Collector) findDescription(s *goquery.Selection) string {
	parent := s.Parent()
	if parent.Length() == 0 {
		return ""
	}

	descs := parent.Find("p, span, div").FilterFunction(func(_ int, d *goquery.Selection) bool {
		class, _ := d.Attr("class")
		return descriptionClass.MatchString(class)
	})
	if descs.Length() > 0 {
		return strings.TrimSpace(descs.First().Text())
	}

	if sibling := s.NextAllFiltered("p, span, div").First(); sibling.Length() > 0 {
		return strings.TrimSpace(sibling.Text())
	}
	return ""
}

func baseOf(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(sourceURL, "/")
	}
	return u.Scheme + "://" + u.Host
}
