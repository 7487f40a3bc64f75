package metrics

import (
	"context"
	"net/http"
	"time"

	"go.trai.ch/bundle/internal/core/ports"
)

var _ ports.Recorder = Noop{}

// Noop discards every observation.
type Noop struct{}

// ObserveRun implements ports.Recorder.
func (Noop) ObserveRun(string, time.Duration, bool) {}

// Handler implements ports.Recorder. It answers every request with 404.
func (Noop) Handler() http.Handler {
	return http.NotFoundHandler()
}

// Serve implements ports.Recorder. It blocks until ctx is done.
func (Noop) Serve(ctx context.Context, _ string) error {
	<-ctx.Done()
	return nil
}
