package selection

import (
	"testing"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	datum := map[string]any{
		"id":                "p1",
		"uri":               "http://localhost/nifi-api/input-ports/p1",
		"allowRemoteAccess": true,
		"revision":          map[string]any{"clientId": "c", "version": float64(7)},
		"component": map[string]any{
			"id":                               "p1",
			"name":                             "ingest",
			"comments":                         "",
			"state":                            "DISABLED",
			"type":                             "INPUT_PORT",
			"concurrentlySchedulableTaskCount": float64(2),
			"allowRemoteAccess":                true,
		},
	}

	entity, err := Decode(datum)
	require.NoError(t, err)
	assert.Equal(t, "p1", entity.ID)
	assert.Equal(t, int64(7), entity.Revision.Version)
	assert.Equal(t, domain.StateDisabled, entity.Component.State)
	assert.Equal(t, 2, entity.Component.ConcurrentlySchedulableTaskCount)
	assert.True(t, entity.AllowRemoteAccess)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)

	_, err = Decode(map[string]any{"component": map[string]any{}})
	assert.Error(t, err, "missing id")

	_, err = Decode(map[string]any{"id": "p1"})
	assert.Error(t, err, "missing component")
}

func TestFromEntity_RoundTrip(t *testing.T) {
	entity := &domain.PortEntity{
		Revision: domain.Revision{Version: 3},
		ID:       "p2",
		URI:      "http://localhost/nifi-api/output-ports/p2",
		Component: &domain.PortComponent{
			ID:    "p2",
			Name:  "egress",
			State: domain.StateRunning,
			Type:  domain.TypeOutputPort,
		},
	}

	sel, err := FromEntity(entity)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeOutputPort, sel.ComponentType())

	decoded, err := Decode(sel.CurrentData())
	require.NoError(t, err)
	assert.Equal(t, entity, decoded)
}

func TestCanvas(t *testing.T) {
	c := Canvas{}
	in := New(domain.TypeInputPort, nil)
	out := New(domain.TypeOutputPort, nil)
	proc := New(domain.TypeProcessor, nil)

	assert.True(t, c.IsInputPort(in))
	assert.False(t, c.IsOutputPort(in))
	assert.True(t, c.IsOutputPort(out))
	assert.False(t, c.IsInputPort(proc) || c.IsOutputPort(proc))
	assert.False(t, c.IsInputPort(nil))
}
