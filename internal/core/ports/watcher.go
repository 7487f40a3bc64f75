package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp int

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// String returns the lowercase name of the operation.
func (op WatchOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path string
	Op   WatchOp
}

// Watcher defines the interface for file system watching.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given directories recursively.
	Start(ctx context.Context, roots []string) error
	// Stop stops the watcher and releases resources.
	Stop() error
	// Events returns an iterator of file system events. It ends when the watcher stops.
	Events() iter.Seq[FileEvent]
}
