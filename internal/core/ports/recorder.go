package ports

import (
	"context"
	"net/http"
	"time"
)

// Recorder collects task run metrics.
//
//go:generate mockgen -source=recorder.go -destination=mocks/mock_recorder.go -package=mocks
type Recorder interface {
	// ObserveRun records one finished run of task.
	ObserveRun(task string, d time.Duration, failed bool)
	// Handler exposes the collected metrics over HTTP.
	Handler() http.Handler
	// Serve exposes Handler on addr until ctx is done.
	Serve(ctx context.Context, addr string) error
}
