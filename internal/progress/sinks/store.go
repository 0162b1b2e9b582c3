package sinks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kstoykov/webkin/internal/progress"
)

// TargetStats is the per-target progress snapshot served by the ops API.
type TargetStats struct {
	Host       string     `json:"host"`
	Pages      int        `json:"pages"`
	Fetches    int        `json:"fetches"`
	Failures   int        `json:"failures"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Done       bool       `json:"done"`
}

// Store is an in-memory sink that keeps per-target counters. It is the
// read model behind /v1/targets; the crawl itself never reads it.
type Store struct {
	mu        sync.RWMutex
	runID     uuid.UUID
	targets   map[string]*TargetStats
	crawlDone bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{targets: make(map[string]*TargetStats)}
}

// Consume applies the batch to the counters.
func (s *Store) Consume(_ context.Context, batch []progress.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, evt := range batch {
		s.runID = evt.RunID
		switch evt.Stage {
		case progress.StageTargetStart:
			stats := s.stats(evt.Host)
			stats.StartedAt = evt.TS
		case progress.StageTargetDone:
			stats := s.stats(evt.Host)
			stats.Pages = evt.Pages
			stats.Done = true
			finished := evt.TS
			stats.FinishedAt = &finished
		case progress.StageFetchDone:
			stats := s.stats(evt.Host)
			stats.Fetches++
			if evt.Result != progress.FetchOK {
				stats.Failures++
			}
		case progress.StageCrawlDone:
			s.crawlDone = true
		}
	}
	return nil
}

func (s *Store) stats(host string) *TargetStats {
	stats, ok := s.targets[host]
	if !ok {
		stats = &TargetStats{Host: host}
		s.targets[host] = stats
	}
	return stats
}

// Snapshot returns the per-target stats sorted by host, plus the run ID
// and whether the crawl has completed.
func (s *Store) Snapshot() (uuid.UUID, []TargetStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TargetStats, 0, len(s.targets))
	for _, stats := range s.targets {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Host < out[j].Host })
	return s.runID, out, s.crawlDone
}

// Close implements the Sink interface; it performs no action.
func (s *Store) Close(context.Context) error {
	return nil
}
