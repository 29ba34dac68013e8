package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskCount_Unmarshal(t *testing.T) {
	var body struct {
		Count *TaskCount `json:"count"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"count":"10"}`), &body))
	n, err := body.Count.Int()
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	require.NoError(t, json.Unmarshal([]byte(`{"count":7}`), &body))
	n, err = body.Count.Int()
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.NoError(t, json.Unmarshal([]byte(`{"count":"ten"}`), &body))
	_, err = body.Count.Int()
	assert.Error(t, err)

	assert.Error(t, json.Unmarshal([]byte(`{"count":true}`), &body))
}

func TestParseScheduledState(t *testing.T) {
	s, err := ParseScheduledState("DISABLED")
	require.NoError(t, err)
	assert.Equal(t, StateDisabled, s)

	_, err = ParseScheduledState("PAUSED")
	assert.Error(t, err)
}

func TestParsePortKind(t *testing.T) {
	for raw, want := range map[string]ComponentType{
		"input":       TypeInputPort,
		" Output ":    TypeOutputPort,
		"INPUT_PORT":  TypeInputPort,
		"output_port": TypeOutputPort,
	} {
		got, err := ParsePortKind(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParsePortKind("funnel")
	assert.Error(t, err)
}
