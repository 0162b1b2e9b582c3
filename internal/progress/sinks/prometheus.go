package sinks

import (
	"context"

	"github.com/kstoykov/webkin/internal/metrics"
	"github.com/kstoykov/webkin/internal/progress"
)

// PrometheusSink translates progress events into the collectors exposed
// by the metrics package.
type PrometheusSink struct{}

// NewPrometheusSink initializes the collectors and returns the sink.
func NewPrometheusSink() *PrometheusSink {
	metrics.Init()
	return &PrometheusSink{}
}

// Consume updates the collectors for each event in the batch.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		switch evt.Stage {
		case progress.StageFetchDone:
			metrics.ObservePage(string(evt.Result), evt.Dur)
		case progress.StageTargetFound:
			metrics.TargetFound()
		case progress.StageTargetStart:
			metrics.TargetStarted()
		case progress.StageTargetDone:
			metrics.TargetFinished()
		case progress.StageCrawlDone:
			metrics.CrawlCompleted()
		}
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
