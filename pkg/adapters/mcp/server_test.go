package mcp

import (
	"context"
	"net/http/httptest"
	"testing"

	porthttp "github.com/aretw0/portcfg/pkg/adapters/http"
	"github.com/aretw0/portcfg/pkg/adapters/memory"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/flow"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()

	ts := httptest.NewUnstartedServer(nil)
	base := "http://" + ts.Listener.Addr().String() + "/nifi-api"

	svc := flow.NewService(flow.WithBaseURI(base))
	require.NoError(t, svc.Seed(&domain.PortEntity{Component: &domain.PortComponent{
		ID: "out-1", Name: "egress", Type: domain.TypeOutputPort,
		ConcurrentlySchedulableTaskCount: 2, AllowRemoteAccess: true,
	}}))

	handler, err := porthttp.NewHandler(svc)
	require.NoError(t, err)
	ts.Config.Handler = handler
	ts.Start()
	t.Cleanup(ts.Close)

	store := memory.NewStore()
	return NewServer(porthttp.NewClient(base), store), store
}

func TestShowPort(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleShow(ctx, mcp.CallToolRequest{}, map[string]interface{}{"kind": "output", "id": "out-1"})
	require.NoError(t, err)
	assert.Equal(t, "egress", resp.Port.Component.Name)

	_, err = s.handleShow(ctx, mcp.CallToolRequest{}, map[string]interface{}{"kind": "input", "id": "out-1"})
	assert.Error(t, err)

	_, err = s.handleShow(ctx, mcp.CallToolRequest{}, map[string]interface{}{"kind": "funnel", "id": "out-1"})
	assert.ErrorContains(t, err, "unknown port kind")
}

func TestConfigurePort(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleConfigure(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"kind":             "output",
		"id":               "out-1",
		"name":             "",
		"concurrent_tasks": "zero",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Outcome)
	assert.Equal(t, []string{"Port name cannot be blank.", "Concurrent tasks must be a positive integer."}, resp.Messages)

	resp, err = s.handleConfigure(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"kind":             "output",
		"id":               "out-1",
		"enabled":          false,
		"concurrent_tasks": float64(6),
	})
	require.NoError(t, err)
	require.Equal(t, "applied", resp.Outcome)
	assert.Equal(t, domain.StateDisabled, resp.Port.Component.State)
	assert.Equal(t, 6, resp.Port.Component.ConcurrentlySchedulableTaskCount)
	assert.Equal(t, "egress", resp.Port.Component.Name, "omitted fields keep their value")

	cached, err := store.Get(ctx, "out-1")
	require.NoError(t, err)
	assert.Equal(t, resp.Port, cached)
}
