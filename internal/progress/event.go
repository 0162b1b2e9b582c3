// Package progress defines the event stream emitted by the crawl engine
// and the Hub that fans it out to sinks. Progress is an observability
// concern only: the crawl's correctness never depends on an event being
// delivered.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the milestone an Event represents.
type Stage string

// Supported progress stages.
const (
	StageCrawlStart  Stage = "CRAWL_START"
	StageCrawlDone   Stage = "CRAWL_DONE"
	StageTargetStart Stage = "TARGET_START"
	StageTargetDone  Stage = "TARGET_DONE"
	StageTargetFound Stage = "TARGET_FOUND"
	StageFetchDone   Stage = "FETCH_DONE"
)

// FetchResult is the coarse outcome of one page fetch.
type FetchResult string

// Fetch outcomes. Failures here are soft by design; they exist only for
// observability.
const (
	FetchOK          FetchResult = "ok"
	FetchUnreachable FetchResult = "unreachable"
	FetchNotHTML     FetchResult = "not_html"
	FetchBodyError   FetchResult = "body_error"
)

// Event is one progress milestone. Host is set for target- and
// fetch-level stages; URL, Links, Result and Dur only for FETCH_DONE;
// Pages only for TARGET_DONE; Targets only for crawl-level stages.
type Event struct {
	RunID   uuid.UUID
	Stage   Stage
	TS      time.Time
	Host    string
	URL     string
	Links   int
	Pages   int
	Targets int
	Result  FetchResult
	Dur     time.Duration
}

// Validate checks the invariants sinks rely on.
func (e Event) Validate() error {
	switch e.Stage {
	case StageCrawlStart, StageCrawlDone:
	case StageTargetStart, StageTargetDone, StageTargetFound, StageFetchDone:
		if e.Host == "" {
			return fmt.Errorf("progress: %s event without host", e.Stage)
		}
	default:
		return fmt.Errorf("progress: unknown stage %q", e.Stage)
	}
	if e.TS.IsZero() {
		return errors.New("progress: event without timestamp")
	}
	return nil
}
