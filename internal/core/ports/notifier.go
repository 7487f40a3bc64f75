package ports

import (
	"context"

	"go.trai.ch/bundle/internal/core/domain"
)

// Notifier raises desktop notifications.
//
//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
