package ports

import (
	"context"

	"github.com/aretw0/portcfg/pkg/domain"
)

// PortStore is the client-side cache of port entities.
// It is only written with representations confirmed by the service.
type PortStore interface {
	// Set replaces the cached entity with the same id.
	Set(ctx context.Context, entity *domain.PortEntity) error

	// Get returns the cached entity.
	// Returns domain.ErrPortNotFound if the port is not cached.
	Get(ctx context.Context, id string) (*domain.PortEntity, error)

	// Delete removes the cached entity. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all cached ports.
	List(ctx context.Context) ([]string, error)
}
