// Package htmldoc implements the crawl engine's HTML parsing
// collaborator with goquery.
package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls anchor hrefs out of HTML documents. It is stateless
// and safe for concurrent use.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Links returns the literal href attribute value of every anchor element
// in doc, deduplicated in document order. Values are kept exactly as
// written; resolution against the page's host is the engine's job.
// Malformed markup degrades to a best-effort parse, never an error.
func (e *Extractor) Links(doc string) []string {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	parsed.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}
