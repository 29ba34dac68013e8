// Package revision supplies the revision that accompanies every update.
package revision

import (
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/ports"
	"github.com/google/uuid"
)

// Client stamps outgoing revisions with a stable client id, so the service can tell
// this client's own writes apart from concurrent ones.
type Client struct {
	id string
}

var _ ports.RevisionSource = (*Client)(nil)

// NewClient creates a revision source. An empty id generates a random one.
func NewClient(id string) *Client {
	if id == "" {
		id = uuid.NewString()
	}
	return &Client{id: id}
}

// ID returns the client id.
func (c *Client) ID() string {
	return c.id
}

// GetRevision returns the last-known version of the entity with this client's id.
// The version is never invented: an entity without a revision yields version 0.
func (c *Client) GetRevision(entity *domain.PortEntity) domain.Revision {
	if entity == nil {
		return domain.Revision{ClientID: c.id}
	}
	return domain.Revision{
		ClientID: c.id,
		Version:  entity.Revision.Version,
	}
}
