package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/newslens/newslens/app/analysis"
	"github.com/newslens/newslens/app/sources"
	"github.com/newslens/newslens/app/textutil"
)

// minArticleChars is the smallest extraction accepted as article content.
const minArticleChars = 100

// maxFeedHops bounds feed-to-article resolution to a single redirect.
const maxFeedHops = 1

// maxRedirectHops bounds HTTP redirect chains per request.
const maxRedirectHops = 5

var errRobotsDisallowed = errors.New("disallowed by robots.txt")

var paywallMarkers = [][]byte{
	[]byte("paywall"),
	[]byte("subscribe to continue"),
	[]byte("subscription required"),
	[]byte("to continue reading"),
}

// Options configures a Scraper. Zero fields fall back to defaults.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	MaxBodySize       int64
	Retries           int
	RetryDelay        time.Duration
}

// DefaultOptions returns the production scraper settings.
func DefaultOptions() Options {
	return Options{
		Timeout:           10 * time.Second,
		UserAgent:         "NewsLens/1.0",
		RequestsPerSecond: 4,
		MaxBodySize:       8 << 20,
		Retries:           1,
		RetryDelay:        time.Second,
	}
}

// Scraper fetches article pages and extracts their readable content. A
// single instance is shared by all workers; the rate limiter and robots
// cache are safe for concurrent use.
type Scraper struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
	robots  *robotsCache
}

var _ analysis.ArticleFetcher = (*Scraper)(nil)

// New creates a scraper with the given options.
func New(opts Options) *Scraper {
	defaults := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaults.MaxBodySize
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaults.RetryDelay
	}

	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			MaxIdleConnsPerHost: 5,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirectHops {
				return fmt.Errorf("stopped after %d redirects", maxRedirectHops)
			}
			return nil
		},
	}

	return &Scraper{
		client:  client,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst),
		robots:  newRobotsCache(client, opts.UserAgent),
	}
}

// Fetch downloads the URL and extracts an article from it. Feed URLs are
// resolved to their first item. Failures are reported as ScrapeError
// values whose Reason tells the caller what went wrong.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*analysis.Article, error) {
	u, err := parseArticleURL(rawURL)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit interrupted: %w", err)
	}

	if !s.robots.Allowed(ctx, u) {
		return nil, &ScrapeError{Reason: ReasonUnreachable, URL: rawURL, Err: errRobotsDisallowed}
	}

	return s.fetchArticle(ctx, u, 0)
}

func parseArticleURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, &ScrapeError{Reason: ReasonMalformedURL, URL: rawURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ScrapeError{Reason: ReasonMalformedURL, URL: rawURL, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &ScrapeError{Reason: ReasonMalformedURL, URL: rawURL, Err: errors.New("missing host")}
	}
	return u, nil
}

func (s *Scraper) fetchArticle(ctx context.Context, u *url.URL, depth int) (*analysis.Article, error) {
	body, contentType, err := s.download(ctx, u)
	if err != nil {
		return nil, err
	}

	if looksLikeFeed(contentType, body) {
		if depth >= maxFeedHops {
			return nil, &ScrapeError{Reason: ReasonNoContent, URL: u.String(), Err: errors.New("feed resolved to another feed")}
		}
		itemURL, err := firstItemURL(body)
		if err != nil {
			return nil, &ScrapeError{Reason: ReasonNoContent, URL: u.String(), Err: err}
		}
		next, err := u.Parse(itemURL)
		if err != nil {
			return nil, &ScrapeError{Reason: ReasonMalformedURL, URL: itemURL, Err: err}
		}
		slog.Debug("Feed URL resolved to article", "feed", u.String(), "article", next.String())
		return s.fetchArticle(ctx, next, depth+1)
	}

	return s.extract(u, body)
}

func (s *Scraper) download(ctx context.Context, u *url.URL) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.opts.Retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * s.opts.RetryDelay
			if delay > 5*s.opts.RetryDelay {
				delay = 5 * s.opts.RetryDelay
			}
			slog.Debug("Retrying fetch", "url", u.String(), "attempt", attempt, "delay", delay.String())
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, "", fmt.Errorf("retry interrupted: %w", ctx.Err())
			}
		}

		body, contentType, retryable, err := s.downloadOnce(ctx, u)
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err
		if !retryable {
			return nil, "", err
		}
	}
	return nil, "", lastErr
}

func (s *Scraper) downloadOnce(ctx context.Context, u *url.URL) ([]byte, string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", false, &ScrapeError{Reason: ReasonMalformedURL, URL: u.String(), Err: err}
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", true, &ScrapeError{Reason: ReasonUnreachable, URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusPaymentRequired:
		return nil, "", false, &ScrapeError{Reason: ReasonPaywalled, URL: u.String(), Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	case resp.StatusCode >= 500:
		return nil, "", true, &ScrapeError{Reason: ReasonUnreachable, URL: u.String(), Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	default:
		return nil, "", false, &ScrapeError{Reason: ReasonUnreachable, URL: u.String(), Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	reader, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return nil, "", true, &ScrapeError{Reason: ReasonUnreachable, URL: u.String(), Err: fmt.Errorf("failed to decode response body: %w", err)}
	}

	body, err := io.ReadAll(io.LimitReader(reader, s.opts.MaxBodySize))
	if err != nil {
		return nil, "", true, &ScrapeError{Reason: ReasonUnreachable, URL: u.String(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return body, contentType, false, nil
}

func (s *Scraper) extract(u *url.URL, body []byte) (*analysis.Article, error) {
	article := &analysis.Article{
		URL:    u.String(),
		Domain: sources.NormalizeDomain(u.Hostname()),
	}

	parsed, err := readability.FromReader(bytes.NewReader(body), u)
	if err == nil {
		article.Title = strings.TrimSpace(parsed.Title)
		article.Text = textutil.CleanText(parsed.TextContent)
		if byline := strings.TrimSpace(parsed.Byline); byline != "" {
			article.Authors = []string{byline}
		}
	} else {
		slog.Debug("Readability extraction failed, falling back to document text", "url", u.String(), "error", err)
	}

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		fillFromDocument(article, doc)
	}

	if len(article.Text) < minArticleChars {
		if hasPaywallMarker(body) {
			return nil, &ScrapeError{Reason: ReasonPaywalled, URL: u.String(), Err: errors.New("paywall marker in page")}
		}
		return nil, &ScrapeError{Reason: ReasonNoContent, URL: u.String(), Err: fmt.Errorf("extracted only %d characters", len(article.Text))}
	}

	slog.Debug("Article extracted",
		"url", u.String(), "title", article.Title, "content_length", len(article.Text))
	return article, nil
}

// fillFromDocument fills metadata readability could not provide, and falls
// back to paragraph text when no readable content was found at all.
func fillFromDocument(article *analysis.Article, doc *goquery.Document) {
	if article.Title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
			article.Title = strings.TrimSpace(og)
		} else {
			article.Title = strings.TrimSpace(doc.Find("title").First().Text())
		}
	}

	if len(article.Authors) == 0 {
		if author, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok && strings.TrimSpace(author) != "" {
			article.Authors = []string{strings.TrimSpace(author)}
		}
	}

	if published, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		article.PublishedAt = strings.TrimSpace(published)
	}

	if article.Text == "" {
		var parts []string
		doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		article.Text = textutil.CleanText(strings.Join(parts, " "))
	}
}

func hasPaywallMarker(body []byte) bool {
	lowered := bytes.ToLower(body)
	for _, marker := range paywallMarkers {
		if bytes.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
