package editor

import (
	"log/slog"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/ports"
)

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithCanvas sets the capability predicates used to accept selections.
func WithCanvas(canvas ports.Canvas) Option {
	return func(e *Editor) {
		e.canvas = canvas
	}
}

// WithNotifier sets the UI notifier signalled after a successful update.
func WithNotifier(n ports.Notifier) Option {
	return func(e *Editor) {
		e.notifier = n
	}
}

// WithNoticePresenter sets where validation notices are shown.
func WithNoticePresenter(p ports.NoticePresenter) Option {
	return func(e *Editor) {
		e.notices = p
	}
}

// WithErrorHandler sets the handler for failures that force the dialog closed.
func WithErrorHandler(h ports.ErrorHandler) Option {
	return func(e *Editor) {
		e.errors = h
	}
}

// WithRevisionSource sets the revision collaborator.
func WithRevisionSource(r ports.RevisionSource) Option {
	return func(e *Editor) {
		e.revisions = r
	}
}

// WithDisconnectionState sets the session storage collaborator.
func WithDisconnectionState(d ports.DisconnectionState) Option {
	return func(e *Editor) {
		e.disconnection = d
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.EditorHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}
