package crawler

// fanout coordinates a dynamically growing set of worker goroutines that
// all report items on a single channel. It is the shared shape of both
// coordination loops: the orchestrator fans out over targets, each
// coordinator fans out over pages.
//
// Exactly one goroutine (the owner) calls run; spawn may be called before
// run to seed workers and from inside the handler to grow the set. The
// worker contract is that every item send completes before the worker's
// completion tick, so once the live count reaches zero all outstanding
// items are already buffered and a non-blocking drain observes every one
// of them. That is the whole termination proof: no sender left, buffer
// empty, done.
type fanout[T any] struct {
	items    chan T
	finished chan struct{}
	live     int
}

func newFanout[T any](buffer int) *fanout[T] {
	if buffer <= 0 {
		buffer = defaultChannelBuffer
	}
	return &fanout[T]{
		items:    make(chan T, buffer),
		finished: make(chan struct{}, buffer),
	}
}

// spawn starts fn as a worker goroutine. fn may send any number of items
// on the channel it is handed before returning.
func (f *fanout[T]) spawn(fn func(items chan<- T)) {
	f.live++
	go func() {
		fn(f.items)
		f.finished <- struct{}{}
	}()
}

// run dispatches items to handle until no worker remains live and the
// item buffer is drained. handle runs on the owner goroutine, so any
// state it touches needs no locking; it may call spawn to add workers.
func (f *fanout[T]) run(handle func(T)) {
	if f.live == 0 && f.drain(handle) {
		return
	}
	for {
		select {
		case item := <-f.items:
			f.reap()
			handle(item)
			if f.live == 0 && f.drain(handle) {
				return
			}
		case <-f.finished:
			f.live--
			if f.live == 0 && f.drain(handle) {
				return
			}
		}
	}
}

// reap collects completion ticks from already-finished workers without
// blocking, keeping the live count honest before handle runs.
func (f *fanout[T]) reap() {
	for {
		select {
		case <-f.finished:
			f.live--
		default:
			return
		}
	}
}

// drain handles whatever the last workers left buffered. Handling may
// spawn fresh workers, in which case the main loop resumes. Reports
// whether the fanout is exhausted.
func (f *fanout[T]) drain(handle func(T)) bool {
	for {
		select {
		case item := <-f.items:
			handle(item)
			if f.live > 0 {
				return false
			}
		default:
			return true
		}
	}
}
