package crawler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kstoykov/webkin/internal/progress"
)

// crawlTarget returns the coordinator body that crawls one host to
// exhaustion. It runs as a worker of the orchestrator's fanout: related
// hosts it discovers are sent on the targets channel it is handed, and
// its return is the orchestrator's completion tick.
func (c *Crawler) crawlTarget(ctx context.Context, target CrawlTarget) func(chan<- CrawlTarget) {
	return func(targets chan<- CrawlTarget) {
		host := target.Host()
		c.logger.Info("Crawling target...", zap.Stringer("host", host))
		c.emit(progress.Event{Stage: progress.StageTargetStart, TS: time.Now(), Host: target.String()})

		// Seed with the bare host so the root page counts as visited
		// before its worker even starts.
		crawled := map[string]struct{}{host.String(): {}}

		links := newFanout[linkBatch](c.cfg.ChannelBuffer)
		links.spawn(c.crawlURL(ctx, target, "https://"+host.String()))

		links.run(func(batch linkBatch) {
			for _, raw := range batch {
				switch resolved := resolveLink(raw, host); resolved.kind {
				case linkPage:
					if _, seen := crawled[resolved.key]; seen {
						continue
					}
					crawled[resolved.key] = struct{}{}
					links.spawn(c.crawlURL(ctx, target, resolved.fetchURL))
				case linkTarget:
					targets <- NewTarget(resolved.host)
				}
			}
		})

		c.logger.Info("Finished crawling target:", zap.Stringer("host", host))
		c.emit(progress.Event{
			Stage: progress.StageTargetDone,
			TS:    time.Now(),
			Host:  target.String(),
			Pages: len(crawled),
		})
	}
}
