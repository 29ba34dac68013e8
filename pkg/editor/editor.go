package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/portcfg/internal/logging"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/ports"
	"github.com/aretw0/portcfg/pkg/revision"
	"github.com/aretw0/portcfg/pkg/selection"
)

// Status is the state of the editor dialog.
type Status int

const (
	StatusClosed Status = iota
	StatusOpen
	StatusSubmitting
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusSubmitting:
		return "submitting"
	}
	return "closed"
}

// OutcomeKind classifies the result of Apply.
type OutcomeKind string

const (
	OutcomeApplied  OutcomeKind = "applied"
	OutcomeRejected OutcomeKind = "rejected"
	OutcomeFailed   OutcomeKind = "failed"
)

// Outcome is the result of a submitted update.
type Outcome struct {
	Kind OutcomeKind

	// Entity is the representation returned by the service (Applied only).
	Entity *domain.PortEntity

	// Notice is what was shown to the operator (Rejected only).
	Notice *domain.Notice

	// Err is the failure reported by the service or the store (Rejected and Failed).
	Err error
}

// Editor is the port configuration editor.
// Safe for concurrent use; at most one update is in flight at a time.
type Editor struct {
	updater       ports.PortUpdater
	store         ports.PortStore
	canvas        ports.Canvas
	notifier      ports.Notifier
	notices       ports.NoticePresenter
	errors        ports.ErrorHandler
	revisions     ports.RevisionSource
	disconnection ports.DisconnectionState
	hooks         domain.EditorHooks
	logger        *slog.Logger

	mu      sync.Mutex
	status  Status
	session domain.EditSession
}

// New creates an editor that submits through updater and reconciles into store.
func New(updater ports.PortUpdater, store ports.PortStore, opts ...Option) *Editor {
	e := &Editor{
		updater: updater,
		store:   store,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.canvas == nil {
		e.canvas = selection.Canvas{}
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if e.notices == nil {
		e.notices = logNotices{logger: e.logger}
	}
	if e.errors == nil {
		e.errors = logErrors{logger: e.logger}
	}
	if e.revisions == nil {
		e.revisions = revision.NewClient("")
	}
	if e.disconnection == nil {
		e.disconnection = unacknowledged{}
	}
	return e
}

// Status returns the current dialog state.
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// IsOpen reports whether the dialog is visible (including while submitting).
func (e *Editor) IsOpen() bool {
	return e.Status() != StatusClosed
}

// ApplyEnabled reports whether the Apply control accepts a click.
func (e *Editor) ApplyEnabled() bool {
	return e.Status() == StatusOpen
}

// Session returns a copy of the current edit session and whether the dialog is open.
func (e *Editor) Session() (domain.EditSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, e.status != StatusClosed
}

// ShowConfiguration opens the dialog for the selection if it is an input or output
// port. Any other selection is ignored and false is returned.
func (e *Editor) ShowConfiguration(ctx context.Context, sel ports.Selection) bool {
	if !e.canvas.IsInputPort(sel) && !e.canvas.IsOutputPort(sel) {
		e.logger.Debug("Ignoring selection that is not a port")
		return false
	}

	entity, err := selection.Decode(sel.CurrentData())
	if err != nil {
		e.logger.Debug("Ignoring port selection without usable data", "err", err)
		return false
	}

	e.mu.Lock()
	if e.status == StatusSubmitting {
		e.mu.Unlock()
		e.logger.Debug("Ignoring selection while an update is in flight", "port_id", entity.ID)
		return false
	}
	e.session = domain.NewEditSession(entity)
	e.status = StatusOpen
	e.mu.Unlock()

	e.logger.Debug("Port configuration opened",
		"port_id", entity.ID,
		"type", sel.ComponentType(),
		"tasks_visible", entity.AllowRemoteAccess,
	)
	e.emit(ctx, e.hooks.OnOpen, &domain.EditorEvent{
		Type:     domain.EventOpen,
		PortID:   entity.ID,
		PortType: sel.ComponentType(),
		Revision: entity.Revision,
	})
	return true
}

// SetName edits the name field.
func (e *Editor) SetName(name string) error {
	return e.edit(func(s *domain.EditSession) { s.Name = name })
}

// SetComments edits the comments field.
func (e *Editor) SetComments(comments string) error {
	return e.edit(func(s *domain.EditSession) { s.Comments = comments })
}

// SetEnabled sets the enabled toggle.
func (e *Editor) SetEnabled(t domain.Toggle) error {
	return e.edit(func(s *domain.EditSession) { s.Enabled = t })
}

// SetAllowRemoteAccess sets the remote access toggle.
// The visibility of the task count field is fixed when the dialog opens.
func (e *Editor) SetAllowRemoteAccess(t domain.Toggle) error {
	return e.edit(func(s *domain.EditSession) { s.AllowRemoteAccess = t })
}

// SetConcurrentTasks edits the raw text of the task count field.
func (e *Editor) SetConcurrentTasks(tasks string) error {
	return e.edit(func(s *domain.EditSession) { s.ConcurrentTasks = tasks })
}

func (e *Editor) edit(fn func(*domain.EditSession)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case StatusClosed:
		return domain.ErrNotOpen
	case StatusSubmitting:
		return domain.ErrSubmitInProgress
	}
	fn(&e.session)
	return nil
}

// Apply submits the current session.
//
// It returns an error only when the editor cannot submit (closed, or an update is
// already in flight); service and store failures are reported through the Outcome
// and the UI collaborators.
func (e *Editor) Apply(ctx context.Context) (Outcome, error) {
	e.mu.Lock()
	switch e.status {
	case StatusClosed:
		e.mu.Unlock()
		return Outcome{}, domain.ErrNotOpen
	case StatusSubmitting:
		e.mu.Unlock()
		return Outcome{}, domain.ErrSubmitInProgress
	}
	session := e.session
	e.status = StatusSubmitting
	e.mu.Unlock()

	// 1. Build the request from the form, never from the original entity
	rev := e.revisions.GetRevision(session.Entity)
	req := session.Request(rev, e.disconnection.IsDisconnectionAcknowledged(ctx))

	event := domain.EditorEvent{
		PortID:   session.PortID,
		PortType: session.Entity.Kind(),
		Revision: rev,
	}
	submit := event
	submit.Type = domain.EventSubmit
	e.emit(ctx, e.hooks.OnSubmit, &submit)

	// 2. Submit
	start := time.Now()
	entity, err := e.updater.UpdatePort(ctx, session.URI, req)
	event.Duration = time.Since(start)

	// 3. Reconcile
	if err == nil {
		return e.applied(ctx, event, entity), nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return e.rejected(ctx, event, verr), nil
	}
	return e.failed(ctx, event, err), nil
}

func (e *Editor) applied(ctx context.Context, event domain.EditorEvent, entity *domain.PortEntity) Outcome {
	if entity == nil {
		return e.failed(ctx, event, fmt.Errorf("update of port %s returned no entity", event.PortID))
	}
	if err := e.store.Set(ctx, entity); err != nil {
		return e.failed(ctx, event, fmt.Errorf("failed to cache port %s: %w", entity.ID, err))
	}

	e.notifier.Digest(ctx)
	e.teardown(ctx)

	e.logger.Info("Port configuration applied",
		"port_id", entity.ID,
		"version", entity.Revision.Version,
		"duration", event.Duration,
	)
	event.Type = domain.EventApplied
	event.Revision = entity.Revision
	e.emit(ctx, e.hooks.OnApplied, &event)

	return Outcome{Kind: OutcomeApplied, Entity: entity}
}

func (e *Editor) rejected(ctx context.Context, event domain.EditorEvent, verr *domain.ValidationError) Outcome {
	e.mu.Lock()
	if e.status == StatusSubmitting {
		e.status = StatusOpen
	}
	e.mu.Unlock()

	notice := domain.Notice{
		Header:   domain.NoticeHeader,
		Messages: verr.Messages,
	}
	e.logger.Warn("Port configuration rejected", "port_id", event.PortID, "messages", len(notice.Messages))
	e.notices.ShowOkDialog(ctx, notice)

	event.Type = domain.EventRejected
	event.Err = verr
	e.emit(ctx, e.hooks.OnRejected, &event)

	return Outcome{Kind: OutcomeRejected, Notice: &notice, Err: verr}
}

func (e *Editor) failed(ctx context.Context, event domain.EditorEvent, err error) Outcome {
	e.teardown(ctx)

	e.logger.Warn("Port configuration failed", "port_id", event.PortID, "err", err)
	e.errors.HandleError(ctx, err)

	event.Type = domain.EventFailed
	event.Err = err
	e.emit(ctx, e.hooks.OnFailed, &event)

	return Outcome{Kind: OutcomeFailed, Err: err}
}

// Cancel closes the dialog without submitting.
func (e *Editor) Cancel(ctx context.Context) error {
	return e.Close(ctx)
}

// Close tears the dialog down, clearing every session field. Closing a closed
// editor is a no-op. An in-flight update cannot be cancelled.
func (e *Editor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.status == StatusSubmitting {
		e.mu.Unlock()
		return domain.ErrSubmitInProgress
	}
	e.mu.Unlock()

	e.teardown(ctx)
	return nil
}

// teardown unconditionally clears the session and closes the dialog.
func (e *Editor) teardown(ctx context.Context) {
	e.mu.Lock()
	wasOpen := e.status != StatusClosed
	portID := e.session.PortID
	e.session = domain.EditSession{}
	e.status = StatusClosed
	e.mu.Unlock()

	if !wasOpen {
		return
	}
	e.logger.Debug("Port configuration closed", "port_id", portID)
	e.emit(ctx, e.hooks.OnClose, &domain.EditorEvent{
		Type:   domain.EventClose,
		PortID: portID,
	})
}

func (e *Editor) emit(ctx context.Context, hook func(context.Context, *domain.EditorEvent), event *domain.EditorEvent) {
	if hook == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	hook(ctx, event)
}
