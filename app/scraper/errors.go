package scraper

import "fmt"

// Failure reasons carried by ScrapeError. The API layer maps these to
// response codes, so the set is fixed.
const (
	ReasonUnreachable  = "unreachable"
	ReasonPaywalled    = "paywalled"
	ReasonNoContent    = "no-content"
	ReasonMalformedURL = "malformed-url"
)

// ScrapeError reports why an article could not be obtained from a URL.
type ScrapeError struct {
	Reason string
	URL    string
	Err    error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scrape failed (%s): %s: %v", e.Reason, e.URL, e.Err)
	}
	return fmt.Sprintf("scrape failed (%s): %s", e.Reason, e.URL)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}
