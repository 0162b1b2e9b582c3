package crawler

import (
	"time"

	"github.com/kstoykov/webkin/internal/hostrel"
)

// CrawlTarget identifies one host admitted to the crawl. It is immutable
// and comparable; equality is by host value.
type CrawlTarget struct {
	host hostrel.Host
}

// NewTarget wraps a parsed host as a crawl target.
func NewTarget(h hostrel.Host) CrawlTarget {
	return CrawlTarget{host: h}
}

// Host returns the target's host.
func (t CrawlTarget) Host() hostrel.Host {
	return t.host
}

// String renders the target as its host authority.
func (t CrawlTarget) String() string {
	return t.host.String()
}

// Config carries the engine knobs. The zero value gets sensible defaults
// applied by New.
type Config struct {
	// ChannelBuffer sizes the discovery channels at both coordination
	// levels.
	ChannelBuffer int

	// FetchTimeout bounds a single probe or fetch; zero leaves the
	// collaborator's own default in charge.
	FetchTimeout time.Duration
}

const defaultChannelBuffer = 32

// Error is the construction error for the engine. Per-fetch failures are
// never surfaced; only a crawler that cannot be built at all reports one
// of these.
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// linkBatch is the set of raw href values one URL worker found on a
// single page, deduplicated within the page.
type linkBatch []string
