package watch

import "sync"

// SerialQueue runs a task at most once at a time. A request made while the
// task runs is queued behind it; further requests coalesce into that one.
type SerialQueue struct {
	run func()

	mu      sync.Mutex
	running bool
	pending bool
	wg      sync.WaitGroup
}

// NewSerialQueue creates a queue around run.
func NewSerialQueue(run func()) *SerialQueue {
	return &SerialQueue{run: run}
}

// Submit requests a run. It never blocks.
func (q *SerialQueue) Submit() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		q.pending = true
		return
	}
	q.running = true
	q.wg.Go(q.loop)
}

func (q *SerialQueue) loop() {
	for {
		q.run()

		q.mu.Lock()
		if !q.pending {
			q.running = false
			q.mu.Unlock()
			return
		}
		q.pending = false
		q.mu.Unlock()
	}
}

// Wait blocks until the running and queued runs have finished.
func (q *SerialQueue) Wait() {
	q.wg.Wait()
}
