package crawler

import (
	"context"
	"strings"
	"time"

	"github.com/kstoykov/webkin/internal/progress"
)

// crawlURL returns the worker body that fetches one page and reports the
// raw links found on it. Every failure is absorbed locally: an
// unreachable, non-HTML, or undecodable page contributes nothing, and the
// coordinator must never learn anything beyond "no batch arrived".
func (c *Crawler) crawlURL(ctx context.Context, target CrawlTarget, pageURL string) func(chan<- linkBatch) {
	return func(items chan<- linkBatch) {
		start := time.Now()

		links, result := c.fetchLinks(ctx, pageURL)

		c.emit(progress.Event{
			Stage:  progress.StageFetchDone,
			TS:     time.Now(),
			Host:   target.String(),
			URL:    pageURL,
			Links:  len(links),
			Result: result,
			Dur:    time.Since(start),
		})

		// An empty page sends nothing; the worker finishing is signal
		// enough for the coordinator.
		if len(links) > 0 {
			items <- linkBatch(links)
		}
	}
}

func (c *Crawler) fetchLinks(ctx context.Context, pageURL string) ([]string, progress.FetchResult) {
	if c.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.FetchTimeout)
		defer cancel()
	}

	headers, err := c.fetcher.Probe(ctx, pageURL)
	if err != nil {
		return nil, progress.FetchUnreachable
	}
	if !strings.HasPrefix(headers.Get("Content-Type"), "text/html") {
		return nil, progress.FetchNotHTML
	}

	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, progress.FetchBodyError
	}

	return c.extractor.Links(body), progress.FetchOK
}
