package editor

import (
	"context"
	"log/slog"

	"github.com/aretw0/portcfg/pkg/domain"
)

type nopNotifier struct{}

func (nopNotifier) Digest(context.Context) {}

// logNotices is the fallback presenter when no UI is attached.
type logNotices struct {
	logger *slog.Logger
}

func (l logNotices) ShowOkDialog(_ context.Context, notice domain.Notice) {
	l.logger.Warn("Port configuration rejected", "header", notice.Header, "messages", notice.Messages)
}

type logErrors struct {
	logger *slog.Logger
}

func (l logErrors) HandleError(_ context.Context, err error) {
	l.logger.Error("Port configuration failed", "err", err)
}

type unacknowledged struct{}

func (unacknowledged) IsDisconnectionAcknowledged(context.Context) bool { return false }
