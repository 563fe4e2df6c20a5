// Package scraper fetches Arabic publications from the Syrian Dialogue
// Center website and extracts structured article records.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"rasid/internal/util"
	"rasid/pkg/article"
	"rasid/pkg/logger"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
)

const (
	defaultBaseURL   = "https://sydialogue.org"
	defaultUserAgent = "Mozilla/5.0"
	minParagraphLen  = 30
)

var bioIndicators = []string{"باحث", "مدير", "رئيس", "في مركز الحوار السوري"}

// footnoteFallback matches inline [[1]] style references in plain text.
var footnoteFallback = regexp.MustCompile(`\[\[?(\d+)\]?\]([^\[]+)`)

// Scraper crawls the publications listing and individual article pages.
type Scraper struct {
	baseURL   string
	client    *http.Client
	userAgent string
	delay     time.Duration
}

// Params configures a Scraper. Zero values fall back to defaults.
type Params struct {
	BaseURL   string
	UserAgent string
	Delay     time.Duration
	Timeout   time.Duration
}

// New creates a Scraper.
func New(params Params) *Scraper {
	if params.BaseURL == "" {
		params.BaseURL = defaultBaseURL
	}
	if params.UserAgent == "" {
		params.UserAgent = defaultUserAgent
	}
	if params.Delay == 0 {
		params.Delay = time.Second
	}
	if params.Timeout == 0 {
		params.Timeout = 30 * time.Second
	}
	return &Scraper{
		baseURL:   strings.TrimSuffix(params.BaseURL, "/"),
		client:    &http.Client{Timeout: params.Timeout},
		userAgent: params.UserAgent,
		delay:     params.Delay,
	}
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	return util.RetryWithContext(ctx, 3, func(ctx context.Context) (*goquery.Document, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
		}

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse html: %w", err)
		}
		return doc, nil
	})
}

// ListPublicationURLs walks the paginated listing and collects article
// URLs in discovery order, without duplicates. Pagination stops at the
// first page that yields no article links.
func (s *Scraper) ListPublicationURLs(ctx context.Context, maxPages int) ([]string, error) {
	var urls []string
	seen := make(map[string]bool)

	for page := 1; page <= maxPages; page++ {
		listURL := s.baseURL + "/category/publicationsar/"
		if page > 1 {
			listURL = fmt.Sprintf("%spage/%d/", listURL, page)
		}
		logger.Debug("fetching listing page", "page", page, "url", listURL)

		doc, err := s.fetch(ctx, listURL)
		if err != nil {
			if ctx.Err() != nil {
				return urls, ctx.Err()
			}
			logger.Info("listing pagination ended", "page", page, "error", err)
			break
		}

		found := 0
		doc.Find("a.more-link.button").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok || href == "" {
				return
			}
			full := s.resolveURL(href)
			if full == "" || seen[full] {
				return
			}
			seen[full] = true
			urls = append(urls, full)
			found++
		})

		if found == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return urls, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	logger.Info("collected publication urls", "count", len(urls))
	return urls, nil
}

func (s *Scraper) resolveURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return s.baseURL + href
	}
	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() {
		return ""
	}
	return href
}

// ScrapeArticle fetches one article page and extracts its record.
func (s *Scraper) ScrapeArticle(ctx context.Context, pageURL string) (article.Article, error) {
	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return article.Article{}, err
	}

	art := ExtractArticle(doc, pageURL)

	// Pages without an article element defeat the paragraph heuristic;
	// fall back to readability's main-content extraction.
	if art.Content == "" {
		if text, err := s.readabilityContent(ctx, pageURL); err == nil {
			art.Content = text
		}
	}

	if art.Title == "" && art.Content == "" {
		return article.Article{}, fmt.Errorf("no extractable content at %s", pageURL)
	}
	return art, nil
}

func (s *Scraper) readabilityContent(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %w", err)
	}
	parsed, err := readability.FromReader(resp.Body, u)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var builder strings.Builder
	if err := parsed.RenderText(&builder); err != nil {
		return "", fmt.Errorf("failed to render article text: %w", err)
	}
	return builder.String(), nil
}

// ScrapeAll lists all publication URLs and scrapes each article,
// skipping pages that fail extraction.
func (s *Scraper) ScrapeAll(ctx context.Context, maxPages int) ([]article.Article, error) {
	urls, err := s.ListPublicationURLs(ctx, maxPages)
	if err != nil {
		return nil, err
	}

	articles := make([]article.Article, 0, len(urls))
	for i, pageURL := range urls {
		logger.Info("scraping article", "index", i+1, "total", len(urls), "url", pageURL)

		art, err := s.ScrapeArticle(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return articles, ctx.Err()
			}
			logger.Warn("skipping article", "url", pageURL, "error", err)
			continue
		}
		articles = append(articles, art)

		select {
		case <-ctx.Done():
			return articles, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	logger.Info("scrape finished", "articles", len(articles))
	return articles, nil
}
