package progress

import "context"

// Sink consumes batches of progress events. Implementations must honor
// ctx deadlines and tolerate being called concurrently with Close.
type Sink interface {
	Consume(ctx context.Context, batch []Event) error
	Close(ctx context.Context) error
}

// Emitter publishes individual events. Hub satisfies it; the crawl engine
// depends only on this interface so it stays agnostic about buffering.
type Emitter interface {
	Emit(evt Event)
}
