package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPortStoreContract runs a suite of tests to verify that a PortStore implementation
// adheres to the defined interface contract.
func RunPortStoreContract(t *testing.T, store PortStore) {
	ctx := context.Background()
	portID := "contract-port-" + time.Now().Format("20060102150405")

	newEntity := func(id string, version int64) *domain.PortEntity {
		return &domain.PortEntity{
			Revision:          domain.Revision{ClientID: "contract", Version: version},
			ID:                id,
			URI:               "http://localhost/nifi-api/input-ports/" + id,
			AllowRemoteAccess: true,
			Component: &domain.PortComponent{
				ID:                               id,
				Name:                             "in",
				Comments:                         "contract",
				State:                            domain.StateStopped,
				Type:                             domain.TypeInputPort,
				ConcurrentlySchedulableTaskCount: 3,
				AllowRemoteAccess:                true,
			},
		}
	}

	t.Run("Set and Get", func(t *testing.T) {
		entity := newEntity(portID, 1)
		require.NoError(t, store.Set(ctx, entity), "Set should not return error")

		loaded, err := store.Get(ctx, portID)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, entity, loaded)
	})

	t.Run("Set replaces", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, newEntity(portID, 2)))

		loaded, err := store.Get(ctx, portID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), loaded.Revision.Version)
	})

	t.Run("Get is isolated from the caller", func(t *testing.T) {
		loaded, err := store.Get(ctx, portID)
		require.NoError(t, err)
		loaded.Component.Name = "mutated"

		again, err := store.Get(ctx, portID)
		require.NoError(t, err)
		assert.Equal(t, "in", again.Component.Name)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+portID)
		assert.ErrorIs(t, err, domain.ErrPortNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, portID), "Delete should not return error")

		_, err := store.Get(ctx, portID)
		assert.ErrorIs(t, err, domain.ErrPortNotFound, "Get after Delete should return ErrPortNotFound")

		assert.NoError(t, store.Delete(ctx, portID), "Delete of a missing port is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := portID + "-1"
		id2 := portID + "-2"
		_ = store.Set(ctx, newEntity(id1, 1))
		_ = store.Set(ctx, newEntity(id2, 1))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
