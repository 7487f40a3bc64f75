// Package notify raises desktop notifications for failed tasks.
package notify

import (
	"context"

	"github.com/gen2brain/beeep"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Notifier = (*Desktop)(nil)

var errNotifyFailed = zerr.New("desktop notification failed")

type sendFunc func(title, message string, icon any) error

// Desktop implements ports.Notifier with native desktop notifications.
type Desktop struct {
	notify sendFunc
	alert  sendFunc
}

// NewDesktop creates a Desktop notifier that identifies itself as appName.
func NewDesktop(appName string) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// Notify shows the notification. A notification with Sound set also beeps.
// It returns when the notification was handed to the OS or ctx is done.
func (d *Desktop) Notify(ctx context.Context, n domain.Notification) error {
	title := n.Title
	if n.Subtitle != "" {
		title += ": " + n.Subtitle
	}

	send := d.notify
	if n.Sound {
		send = d.alert
	}

	done := make(chan error, 1)
	go func() {
		done <- send(title, n.Message, "")
	}()

	select {
	case err := <-done:
		if err != nil {
			return zerr.With(zerr.Wrap(err, errNotifyFailed.Error()), "title", title)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
