package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/portcfg/pkg/adapters/memory"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/editor"
	"github.com/aretw0/portcfg/pkg/flow"
	"github.com/aretw0/portcfg/pkg/observability"
	"github.com/aretw0/portcfg/pkg/revision"
	"github.com/aretw0/portcfg/pkg/selection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server  *httptest.Server
	service *flow.Service
	client  *Client
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{}
	env.server = httptest.NewUnstartedServer(nil)
	base := "http://" + env.server.Listener.Addr().String() + "/nifi-api"

	env.service = flow.NewService(flow.WithBaseURI(base))
	require.NoError(t, env.service.Seed(
		&domain.PortEntity{Component: &domain.PortComponent{
			ID: "in-1", Name: "ingress", Type: domain.TypeInputPort, State: domain.StateStopped,
			ConcurrentlySchedulableTaskCount: 5, AllowRemoteAccess: true,
		}},
		&domain.PortEntity{Component: &domain.PortComponent{
			ID: "out-1", Name: "egress", Type: domain.TypeOutputPort,
		}},
	))

	reg := prometheus.NewRegistry()
	env.metrics = observability.NewMetrics(reg)
	handler, err := NewHandler(env.service, WithMetrics(env.metrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	require.NoError(t, err)

	env.server.Config.Handler = handler
	env.server.Start()
	t.Cleanup(env.server.Close)

	env.client = NewClient(base)
	return env
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)
	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_OpenAPISpec(t *testing.T) {
	_, err := LoadSpec(context.Background())
	require.NoError(t, err)

	env := newTestEnv(t)
	resp, err := http.Get(env.server.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "text/yaml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "/nifi-api/input-ports/{id}")
}

func TestServer_GetAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	port, err := env.client.GetPort(ctx, env.client.PortURI(domain.TypeInputPort, "in-1"))
	require.NoError(t, err)
	assert.Equal(t, env.client.PortURI(domain.TypeInputPort, "in-1"), port.URI)

	_, err = env.client.GetPort(ctx, env.client.PortURI(domain.TypeInputPort, "out-1"))
	var rerr *domain.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusNotFound, rerr.StatusCode)

	ports, err := env.client.ListPorts(ctx)
	require.NoError(t, err)
	require.Len(t, ports, 2)
	assert.Equal(t, "in-1", ports[0].ID)
}

func TestServer_RejectsMalformedRequest(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPut, env.client.PortURI(domain.TypeInputPort, "in-1"),
		strings.NewReader(`{"component":{"id":"in-1"}}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotContains(t, strings.TrimSpace(string(body)), "\n")
}

func TestServer_UpdateErrorsOnTheWire(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uri := env.client.PortURI(domain.TypeInputPort, "in-1")

	_, err := env.client.UpdatePort(ctx, uri, domain.PortUpdateRequest{
		Component: domain.PortUpdate{ID: "in-1", Name: ptr(" "), ConcurrentlySchedulableTaskCount: ptr(domain.TaskCount("-1"))},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Port name cannot be blank.", "Concurrent tasks must be a positive integer."}, verr.Messages)

	_, err = env.client.UpdatePort(ctx, uri, domain.PortUpdateRequest{
		Revision:  domain.Revision{ClientID: "c", Version: 9},
		Component: domain.PortUpdate{ID: "in-1"},
	})
	var rerr *domain.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, rerr.IsConflict())
	assert.Equal(t, "[9, c, in-1] is not the most up-to-date revision. This component appears to have been modified", rerr.Message)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Requests.WithLabelValues("PUT", "/nifi-api/input-ports/{id}", "409")))
}

func TestServer_Metrics(t *testing.T) {
	env := newTestEnv(t)
	_, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)

	resp, err := http.Get(env.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `portcfg_http_requests_total{code="200",method="GET",route="/health"} 1`)
}

// The editor driven against the real service over HTTP.
func TestEditor_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store := memory.NewStore()
	inbox := &memory.Inbox{}
	notifier := &memory.Notifier{}
	e := editor.New(env.client, store,
		editor.WithNoticePresenter(inbox),
		editor.WithErrorHandler(inbox),
		editor.WithNotifier(notifier),
		editor.WithRevisionSource(revision.NewClient("operator")),
	)

	open := func() {
		t.Helper()
		port, err := env.client.GetPort(ctx, env.client.PortURI(domain.TypeInputPort, "in-1"))
		require.NoError(t, err)
		sel, err := selection.FromEntity(port)
		require.NoError(t, err)
		require.True(t, e.ShowConfiguration(ctx, sel))
	}

	t.Run("rejected input stays open", func(t *testing.T) {
		open()
		require.NoError(t, e.SetName(""))
		outcome, err := e.Apply(ctx)
		require.NoError(t, err)
		assert.Equal(t, editor.OutcomeRejected, outcome.Kind)
		assert.Equal(t, []string{"Port name cannot be blank."}, inbox.Notices()[0].Messages)
		assert.True(t, e.IsOpen())
		require.NoError(t, e.Close(ctx))
	})

	t.Run("applied", func(t *testing.T) {
		open()
		require.NoError(t, e.SetConcurrentTasks("10"))
		require.NoError(t, e.SetEnabled(domain.ToggleUnchecked))
		outcome, err := e.Apply(ctx)
		require.NoError(t, err)
		require.Equal(t, editor.OutcomeApplied, outcome.Kind)

		cached, err := store.Get(ctx, "in-1")
		require.NoError(t, err)
		assert.Equal(t, 10, cached.Component.ConcurrentlySchedulableTaskCount)
		assert.Equal(t, domain.StateDisabled, cached.Component.State)
		assert.Equal(t, domain.Revision{ClientID: "operator", Version: 1, LastModifier: "anonymous"}, cached.Revision)
		assert.Equal(t, 1, notifier.Digests())
	})

	t.Run("stale revision forces close", func(t *testing.T) {
		open()
		_, err := env.service.UpdatePort(ctx, domain.TypeInputPort, "in-1", domain.PortUpdateRequest{
			Revision:  domain.Revision{Version: 1},
			Component: domain.PortUpdate{ID: "in-1", Comments: ptr("changed elsewhere")},
		})
		require.NoError(t, err)

		outcome, err := e.Apply(ctx)
		require.NoError(t, err)
		assert.Equal(t, editor.OutcomeFailed, outcome.Kind)
		assert.False(t, e.IsOpen())
		require.Len(t, inbox.Errors(), 1)

		cached, err := store.Get(ctx, "in-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), cached.Revision.Version, "cache keeps the last applied representation")
	})
}
