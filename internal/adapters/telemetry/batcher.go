// Package telemetry records task runs as OpenTelemetry spans and forwards them to a renderer.
package telemetry

import (
	"bytes"
	"sync"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultSizeLimit is the buffered output size that triggers a flush.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the longest output is held before it is flushed.
	DefaultTimeLimit = 50 * time.Millisecond
)

var errBatcherClosed = zerr.New("log batcher is closed")

// BatchProcessor buffers span output until a size or time limit is reached.
// It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer bytes.Buffer
	timer  *time.Timer
	closed bool
}

// NewBatchProcessor returns a BatchProcessor that hands flushed chunks to onFlush.
// Non-positive limits select the defaults.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
	}
}

// Write buffers p. A full buffer is flushed immediately; otherwise a flush is
// scheduled timeLimit after the first buffered write.
func (bp *BatchProcessor) Write(p []byte) (int, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, errBatcherClosed
	}

	n, _ := bp.buffer.Write(p)

	if bp.buffer.Len() >= bp.sizeLimit {
		bp.flushLocked()
		return n, nil
	}
	if bp.timer == nil {
		bp.timer = time.AfterFunc(bp.timeLimit, bp.Flush)
	}
	return n, nil
}

// Flush hands any buffered data to the callback.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.flushLocked()
}

// Close performs a final flush. Later writes fail.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true
	bp.flushLocked()
	return nil
}

// flushLocked must be called with mu held. The callback runs under the lock to keep chunks ordered.
func (bp *BatchProcessor) flushLocked() {
	if bp.timer != nil {
		bp.timer.Stop()
		bp.timer = nil
	}
	if bp.buffer.Len() == 0 {
		return
	}

	data := bytes.Clone(bp.buffer.Bytes())
	bp.buffer.Reset()

	if bp.onFlush != nil {
		bp.onFlush(data)
	}
}
