package revision

import (
	"testing"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetRevision(t *testing.T) {
	c := NewClient("client-a")
	rev := c.GetRevision(&domain.PortEntity{
		Revision: domain.Revision{ClientID: "other", Version: 9, LastModifier: "bob"},
	})

	assert.Equal(t, domain.Revision{ClientID: "client-a", Version: 9}, rev)
}

func TestNewClient_GeneratesID(t *testing.T) {
	c := NewClient("")
	_, err := uuid.Parse(c.ID())
	require.NoError(t, err)
	assert.NotEqual(t, c.ID(), NewClient("").ID())
}
