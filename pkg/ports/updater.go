package ports

import (
	"context"

	"github.com/aretw0/portcfg/pkg/domain"
)

// PortUpdater submits a port update to the remote service.
//
// Implementations return *domain.ValidationError when the service rejects the input
// as correctable and any other error for every other failure.
type PortUpdater interface {
	UpdatePort(ctx context.Context, uri string, req domain.PortUpdateRequest) (*domain.PortEntity, error)
}

// PortFetcher reads the current representation of a port.
type PortFetcher interface {
	GetPort(ctx context.Context, uri string) (*domain.PortEntity, error)
}

// RevisionSource derives the revision to send for an entity.
type RevisionSource interface {
	GetRevision(entity *domain.PortEntity) domain.Revision
}

// DisconnectionState reports whether the operator acknowledged working against a
// disconnected cluster node.
type DisconnectionState interface {
	IsDisconnectionAcknowledged(ctx context.Context) bool
}
