package ports

import (
	"context"

	"github.com/aretw0/portcfg/pkg/domain"
)

// Notifier tells dependent views that the model changed and they should re-render.
type Notifier interface {
	Digest(ctx context.Context)
}

// NoticePresenter shows a blocking notice above the editor.
type NoticePresenter interface {
	ShowOkDialog(ctx context.Context, notice domain.Notice)
}

// ErrorHandler reports failures the editor does not handle itself.
type ErrorHandler interface {
	HandleError(ctx context.Context, err error)
}
