package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePort() *domain.PortEntity {
	return &domain.PortEntity{
		ID:                "in-1",
		URI:               "http://localhost/nifi-api/input-ports/in-1",
		Revision:          domain.Revision{ClientID: "c", Version: 2},
		AllowRemoteAccess: true,
		Component: &domain.PortComponent{
			ID: "in-1", Name: "ingress", Type: domain.TypeInputPort, State: domain.StateRunning,
			ConcurrentlySchedulableTaskCount: 4, AllowRemoteAccess: true,
		},
	}
}

func TestWritePort_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePort(&buf, samplePort(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "ingress")
	assert.Contains(t, out, "Concurrent Tasks:")
	assert.Contains(t, out, "RUNNING")
}

func TestWritePort_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePort(&buf, samplePort(), FormatJSON))

	var decoded domain.PortEntity
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *samplePort().Component, *decoded.Component)
}

func TestWritePort_UnknownFormat(t *testing.T) {
	err := WritePort(&bytes.Buffer{}, samplePort(), "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
