package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFanoutWithTimeout(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("fanout did not terminate")
	}
}

func TestFanoutNoWorkers(t *testing.T) {
	f := newFanout[int](4)
	runFanoutWithTimeout(t, func() {
		f.run(func(int) { t.Error("no items expected") })
	})
}

func TestFanoutSilentWorkers(t *testing.T) {
	f := newFanout[int](4)
	for range 8 {
		f.spawn(func(chan<- int) {})
	}
	runFanoutWithTimeout(t, func() {
		f.run(func(int) { t.Error("no items expected") })
	})
}

func TestFanoutDeliversAllItems(t *testing.T) {
	f := newFanout[int](4)
	var got int
	for i := range 10 {
		f.spawn(func(items chan<- int) {
			items <- i
		})
	}
	runFanoutWithTimeout(t, func() {
		f.run(func(int) { got++ })
	})
	assert.Equal(t, 10, got)
}

func TestFanoutItemAndTickBufferedBeforeRun(t *testing.T) {
	// The last worker's item and its completion tick can both be buffered
	// before the owner observes either. Handling the item then reaps the
	// tick, so the item branch must notice the live count hit zero; the
	// finished branch alone never fires again.
	f := newFanout[int](4)
	f.spawn(func(items chan<- int) { items <- 1 })
	require.Eventually(t, func() bool { return len(f.finished) == 1 },
		time.Second, time.Millisecond)

	var got []int
	runFanoutWithTimeout(t, func() {
		f.run(func(v int) { got = append(got, v) })
	})
	assert.Equal(t, []int{1}, got)
}

func TestFanoutHandlerSpawnsWorkers(t *testing.T) {
	// Each handled item spawns another worker until a depth budget runs
	// out; the fanout must still detect the end of the cascade.
	f := newFanout[int](2)
	var handled int
	f.spawn(func(items chan<- int) { items <- 5 })
	runFanoutWithTimeout(t, func() {
		f.run(func(depth int) {
			handled++
			if depth > 0 {
				f.spawn(func(items chan<- int) { items <- depth - 1 })
			}
		})
	})
	assert.Equal(t, 6, handled)
}

func TestFanoutRespawnFromDrain(t *testing.T) {
	// A worker whose item is only handled during the final drain can
	// still grow the set; termination must wait for the new worker.
	f := newFanout[string](8)
	var order []string
	f.spawn(func(items chan<- string) { items <- "first" })
	runFanoutWithTimeout(t, func() {
		f.run(func(item string) {
			order = append(order, item)
			if item == "first" {
				f.spawn(func(items chan<- string) { items <- "second" })
			}
		})
	})
	assert.Equal(t, []string{"first", "second"}, order)
}
