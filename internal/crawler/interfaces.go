package crawler

import (
	"context"
	"net/http"
)

// Fetcher is the HTTP collaborator URL workers fetch through. It must be
// safe for concurrent use; the engine shares one instance across every
// worker goroutine.
type Fetcher interface {
	// Probe issues a headers-only request and returns the response
	// headers.
	Probe(ctx context.Context, url string) (http.Header, error)

	// Fetch issues a GET and returns the decoded text body.
	Fetch(ctx context.Context, url string) (string, error)
}

// LinkExtractor is the HTML parsing collaborator. Links returns the
// literal href attribute value of every anchor element in the document,
// deduplicated. Malformed markup yields a best-effort result, never an
// error.
type LinkExtractor interface {
	Links(document string) []string
}
