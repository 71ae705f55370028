package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// looksLikeFeed sniffs whether a response is an RSS/Atom document rather
// than an article page. Content type is checked first, then the document
// prefix, since many servers label feeds as plain XML or even text/html.
func looksLikeFeed(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "rss+xml") || strings.Contains(ct, "atom+xml") {
		return true
	}

	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimSpace(head)

	if bytes.HasPrefix(head, []byte("<?xml")) {
		return bytes.Contains(head, []byte("<rss")) || bytes.Contains(head, []byte("<feed"))
	}
	return bytes.HasPrefix(head, []byte("<rss")) || bytes.HasPrefix(head, []byte("<feed"))
}

// firstItemURL parses a feed document and returns the link of its first
// linked item, so a feed URL can be resolved to a concrete article.
func firstItemURL(body []byte) (string, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse feed: %w", err)
	}

	for _, item := range parsed.Items {
		if item != nil && item.Link != "" {
			return item.Link, nil
		}
	}
	return "", fmt.Errorf("feed has no linked items")
}
