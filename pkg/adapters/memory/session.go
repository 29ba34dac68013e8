package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/aretw0/portcfg/pkg/domain"
)

// Acknowledgement is an in-memory session storage flag recording whether the
// operator acknowledged a disconnected cluster node.
type Acknowledgement struct {
	acknowledged atomic.Bool
}

// NewAcknowledgement creates the flag with an initial value.
func NewAcknowledgement(acknowledged bool) *Acknowledgement {
	a := &Acknowledgement{}
	a.acknowledged.Store(acknowledged)
	return a
}

// IsDisconnectionAcknowledged implements ports.DisconnectionState.
func (a *Acknowledgement) IsDisconnectionAcknowledged(context.Context) bool {
	return a.acknowledged.Load()
}

// Acknowledge records the operator's acknowledgement.
func (a *Acknowledgement) Acknowledge(v bool) {
	a.acknowledged.Store(v)
}

// Notifier counts digests. Useful for headless hosts and tests.
type Notifier struct {
	digests atomic.Int64
}

// Digest implements ports.Notifier.
func (n *Notifier) Digest(context.Context) {
	n.digests.Add(1)
}

// Digests returns how many times Digest was called.
func (n *Notifier) Digests() int {
	return int(n.digests.Load())
}

// Inbox records notices and errors instead of showing them.
// It implements both ports.NoticePresenter and ports.ErrorHandler.
type Inbox struct {
	mu      sync.Mutex
	notices []domain.Notice
	errs    []error
}

// ShowOkDialog implements ports.NoticePresenter.
func (i *Inbox) ShowOkDialog(_ context.Context, notice domain.Notice) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.notices = append(i.notices, notice)
}

// HandleError implements ports.ErrorHandler.
func (i *Inbox) HandleError(_ context.Context, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.errs = append(i.errs, err)
}

// Notices returns the recorded notices.
func (i *Inbox) Notices() []domain.Notice {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]domain.Notice(nil), i.notices...)
}

// Errors returns the recorded errors.
func (i *Inbox) Errors() []error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]error(nil), i.errs...)
}
