package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

const robotsCacheTTL = time.Hour

type robotsEntry struct {
	group     *robotstxt.Group
	fetchedAt time.Time
}

// robotsCache keeps one parsed robots.txt group per host. Entries expire
// after robotsCacheTTL; hosts whose robots.txt cannot be fetched are
// treated as allowing everything.
type robotsCache struct {
	client    *http.Client
	userAgent string

	mu      sync.RWMutex
	entries map[string]*robotsEntry
}

func newRobotsCache(client *http.Client, userAgent string) *robotsCache {
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		entries:   make(map[string]*robotsEntry),
	}
}

// Allowed reports whether the configured user agent may fetch the URL.
func (c *robotsCache) Allowed(ctx context.Context, u *url.URL) bool {
	host := u.Scheme + "://" + u.Host

	c.mu.RLock()
	entry, ok := c.entries[host]
	c.mu.RUnlock()

	if !ok || time.Since(entry.fetchedAt) > robotsCacheTTL {
		entry = c.fetch(ctx, host)
		c.mu.Lock()
		c.entries[host] = entry
		c.mu.Unlock()
	}

	if entry.group == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return entry.group.Test(path)
}

func (c *robotsCache) fetch(ctx context.Context, host string) *robotsEntry {
	entry := &robotsEntry{fetchedAt: time.Now()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return entry
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Debug("Robots fetch failed, allowing by default", "host", host, "error", err)
		return entry
	}
	defer resp.Body.Close()

	// FromResponse applies the standard status conventions: 4xx allows
	// everything, 5xx disallows everything.
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		slog.Debug("Robots parse failed, allowing by default", "host", host, "error", err)
		return entry
	}

	entry.group = data.FindGroup(c.userAgent)
	return entry
}
