package watch_test

import (
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bundle/internal/engine/watch"
)

func TestSerialQueue_SingleRun(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var runs atomic.Int32
		q := watch.NewSerialQueue(func() { runs.Add(1) })

		q.Submit()
		q.Wait()

		assert.Equal(t, int32(1), runs.Load())
	})
}

func TestSerialQueue_QueuesBehindRunningTask(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var runs, active, maxActive atomic.Int32
		q := watch.NewSerialQueue(func() {
			n := active.Add(1)
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			runs.Add(1)
			time.Sleep(100 * time.Millisecond)
			active.Add(-1)
		})

		q.Submit()
		synctest.Wait()
		assert.Equal(t, int32(1), runs.Load())

		// Requests while running coalesce into one queued run.
		q.Submit()
		q.Submit()
		q.Submit()

		q.Wait()
		assert.Equal(t, int32(2), runs.Load())
		assert.Equal(t, int32(1), maxActive.Load())
	})
}

func TestSerialQueue_SubmitAfterIdle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var runs atomic.Int32
		q := watch.NewSerialQueue(func() {
			runs.Add(1)
			time.Sleep(10 * time.Millisecond)
		})

		q.Submit()
		q.Wait()
		q.Submit()
		q.Wait()

		assert.Equal(t, int32(2), runs.Load())
	})
}
