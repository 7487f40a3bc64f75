package pipeline

import (
	"context"
	"errors"

	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/bundle/internal/core/ports"
	"go.trai.ch/zerr"
)

// ToastSubtitle is the subtitle of every failure notification.
const ToastSubtitle = "Task error"

type annotated interface {
	Annotated() string
}

// Funnel is the single place task failures are reported.
type Funnel struct {
	logger   ports.Logger
	notifier ports.Notifier
}

// NewFunnel creates a Funnel.
func NewFunnel(logger ports.Logger, notifier ports.Notifier) *Funnel {
	return &Funnel{logger: logger, notifier: notifier}
}

// Report routes err to the console and the desktop according to cfg. It never
// fails: notifier errors are logged and dropped.
func (f *Funnel) Report(ctx context.Context, cfg domain.LogConfig, task domain.TaskKind, err error) {
	if err == nil {
		return
	}

	if cfg.PrintToConsole {
		f.logger.Error(zerr.With(err, "task", string(task)))
	}

	if !cfg.DisplayToast {
		return
	}

	msg := err.Error()
	var a annotated
	if errors.As(err, &a) {
		msg = a.Annotated()
	}

	title := cfg.Title
	if title == "" {
		title = domain.DefaultToastTitle
	}

	n := domain.Notification{
		Title:    title,
		Subtitle: ToastSubtitle,
		Message:  msg,
		Sound:    cfg.Sound,
	}
	if nerr := f.notifier.Notify(ctx, n); nerr != nil {
		f.logger.Warn("could not display notification: " + nerr.Error())
	}
}
