package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remotePort() *PortEntity {
	return &PortEntity{
		Revision:          Revision{ClientID: "c1", Version: 4},
		ID:                "p1",
		URI:               "http://localhost/nifi-api/output-ports/p1",
		AllowRemoteAccess: true,
		Component: &PortComponent{
			ID:                               "p1",
			Name:                             "out",
			Comments:                         "to remote",
			State:                            StateStopped,
			Type:                             TypeOutputPort,
			ConcurrentlySchedulableTaskCount: 5,
			AllowRemoteAccess:                true,
		},
	}
}

func componentKeys(t *testing.T, req PortUpdateRequest) map[string]any {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	comp, ok := body["component"].(map[string]any)
	require.True(t, ok, "component must be an object")
	return comp
}

func TestNewEditSession_Snapshot(t *testing.T) {
	entity := remotePort()
	s := NewEditSession(entity)

	assert.Equal(t, "p1", s.PortID)
	assert.Equal(t, "out", s.Name)
	assert.Equal(t, "to remote", s.Comments)
	assert.Equal(t, ToggleChecked, s.Enabled)
	assert.Equal(t, ToggleChecked, s.AllowRemoteAccess)
	assert.Equal(t, "5", s.ConcurrentTasks)
	assert.True(t, s.ConcurrentTasksVisible)
	assert.Equal(t, int64(4), s.Revision.Version)

	// One-way copy: later mutation of the entity is not observed.
	entity.Component.Name = "changed"
	assert.Equal(t, "out", s.Name)
	assert.Equal(t, "out", s.Entity.Component.Name)
}

func TestNewEditSession_Disabled(t *testing.T) {
	entity := remotePort()
	entity.Component.State = StateDisabled
	entity.Component.AllowRemoteAccess = false
	entity.AllowRemoteAccess = false

	s := NewEditSession(entity)
	assert.Equal(t, ToggleUnchecked, s.Enabled)
	assert.Equal(t, ToggleUnchecked, s.AllowRemoteAccess)
	assert.False(t, s.ConcurrentTasksVisible)
}

func TestEditSession_TaskCountOmission(t *testing.T) {
	s := NewEditSession(remotePort())

	t.Run("visible field is always sent", func(t *testing.T) {
		s.ConcurrentTasks = "10"
		comp := componentKeys(t, s.Request(s.Revision, false))
		assert.Equal(t, "10", comp["concurrentlySchedulableTaskCount"])
	})

	t.Run("empty visible field is still sent", func(t *testing.T) {
		s.ConcurrentTasks = ""
		comp := componentKeys(t, s.Request(s.Revision, false))
		assert.Contains(t, comp, "concurrentlySchedulableTaskCount")
	})

	t.Run("hidden field is never sent", func(t *testing.T) {
		hidden := s
		hidden.ConcurrentTasksVisible = false
		hidden.ConcurrentTasks = "10"
		comp := componentKeys(t, hidden.Request(hidden.Revision, false))
		assert.NotContains(t, comp, "concurrentlySchedulableTaskCount")
	})
}

func TestEditSession_StateMapping(t *testing.T) {
	tests := []struct {
		name      string
		toggle    Toggle
		wantState any
		wantKey   bool
	}{
		{"checked sends the enabled equivalent", ToggleChecked, "STOPPED", true},
		{"unchecked sends disabled", ToggleUnchecked, "DISABLED", true},
		{"indeterminate omits state", ToggleIndeterminate, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewEditSession(remotePort())
			s.Enabled = tt.toggle
			comp := componentKeys(t, s.Request(s.Revision, false))
			if !tt.wantKey {
				assert.NotContains(t, comp, "state")
				return
			}
			assert.Equal(t, tt.wantState, comp["state"])
		})
	}
}

func TestEditSession_RemoteAccessMapping(t *testing.T) {
	s := NewEditSession(remotePort())

	s.AllowRemoteAccess = ToggleUnchecked
	assert.Equal(t, false, componentKeys(t, s.Request(s.Revision, false))["allowRemoteAccess"])

	s.AllowRemoteAccess = ToggleChecked
	assert.Equal(t, true, componentKeys(t, s.Request(s.Revision, false))["allowRemoteAccess"])

	s.AllowRemoteAccess = ToggleIndeterminate
	assert.NotContains(t, componentKeys(t, s.Request(s.Revision, false)), "allowRemoteAccess")
}

func TestEditSession_RequestEnvelope(t *testing.T) {
	s := NewEditSession(remotePort())
	s.Name = ""
	s.Comments = ""

	data, err := json.Marshal(s.Request(Revision{ClientID: "me", Version: 4}, true))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"revision": {"clientId": "me", "version": 4},
		"disconnectedNodeAcknowledged": true,
		"component": {
			"id": "p1",
			"name": "",
			"comments": "",
			"concurrentlySchedulableTaskCount": "5",
			"state": "STOPPED",
			"allowRemoteAccess": true
		}
	}`, string(data))
}

func TestEditSession_IsZero(t *testing.T) {
	assert.True(t, EditSession{}.IsZero())
	assert.False(t, NewEditSession(remotePort()).IsZero())
}
