package ports

import "time"

// Renderer presents task runs reported through telemetry spans.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnTaskStart is called when a task run begins.
	OnTaskStart(spanID, name string, startTime time.Time)
	// OnTaskLog is called when a task run emits output. Data may hold partial lines.
	OnTaskLog(spanID string, data []byte)
	// OnTaskComplete is called when a task run finishes. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
	// Flush writes any buffered partial lines.
	Flush()
}
