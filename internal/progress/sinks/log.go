package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/kstoykov/webkin/internal/progress"
)

// LogSink emits structured logs for the progress stream. Useful during
// development or when no ops server is running.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each event in the batch with structured fields.
func (s *LogSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		s.logger.Info("progress event",
			zap.String("run_id", evt.RunID.String()),
			zap.String("stage", string(evt.Stage)),
			zap.String("host", evt.Host),
			zap.String("url", evt.URL),
			zap.Int("links", evt.Links),
			zap.Int("pages", evt.Pages),
			zap.Int("targets", evt.Targets),
			zap.String("result", string(evt.Result)),
			zap.Duration("dur", evt.Dur),
		)
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}
