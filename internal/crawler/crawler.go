package crawler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kstoykov/webkin/internal/progress"
)

// Crawler owns the global target set and drives the whole crawl. Build
// one with New and run it with Crawl; a Crawler is good for a single run.
type Crawler struct {
	cfg       Config
	fetcher   Fetcher
	extractor LinkExtractor
	logger    *zap.Logger
	emitter   progress.Emitter
	runID     uuid.UUID

	// targets is only ever touched by the goroutine running Crawl.
	targets map[CrawlTarget]struct{}
}

// New builds a Crawler over the given collaborators and seed targets. It
// returns a *Error when the engine cannot be constructed: missing
// collaborators or an empty seed set.
func New(
	cfg Config,
	fetcher Fetcher,
	extractor LinkExtractor,
	logger *zap.Logger,
	emitter progress.Emitter,
	seeds ...CrawlTarget,
) (*Crawler, error) {
	if fetcher == nil {
		return nil, &Error{Message: "crawler: no web client"}
	}
	if extractor == nil {
		return nil, &Error{Message: "crawler: no link extractor"}
	}
	if len(seeds) == 0 {
		return nil, &Error{Message: "crawler: no seed targets"}
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = defaultChannelBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	targets := make(map[CrawlTarget]struct{}, len(seeds))
	for _, seed := range seeds {
		targets[seed] = struct{}{}
	}

	return &Crawler{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger,
		emitter:   emitter,
		runID:     uuid.New(),
		targets:   targets,
	}, nil
}

// RunID identifies this crawl run in progress events.
func (c *Crawler) RunID() uuid.UUID {
	return c.runID
}

// Crawl runs the crawl to exhaustion and returns exactly once, after the
// last coordinator has finished and the discovery channel has drained.
// Canceling ctx does not abort the protocol; it makes the remaining
// fetches fail softly, so the crawl still winds down and returns.
func (c *Crawler) Crawl(ctx context.Context) {
	c.emit(progress.Event{Stage: progress.StageCrawlStart, TS: time.Now(), Targets: len(c.targets)})

	discovered := newFanout[CrawlTarget](c.cfg.ChannelBuffer)
	for target := range c.targets {
		discovered.spawn(c.crawlTarget(ctx, target))
	}

	discovered.run(func(candidate CrawlTarget) {
		if _, known := c.targets[candidate]; known {
			return
		}
		c.targets[candidate] = struct{}{}
		c.emit(progress.Event{Stage: progress.StageTargetFound, TS: time.Now(), Host: candidate.String()})
		discovered.spawn(c.crawlTarget(ctx, candidate))
	})

	c.logger.Info("Crawling done")
	c.emit(progress.Event{Stage: progress.StageCrawlDone, TS: time.Now(), Targets: len(c.targets)})
}

func (c *Crawler) emit(evt progress.Event) {
	if c.emitter == nil {
		return
	}
	evt.RunID = c.runID
	c.emitter.Emit(evt)
}
