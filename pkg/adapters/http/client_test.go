package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestClient_UpdatePort_WireContract(t *testing.T) {
	var (
		method  string
		headers http.Header
		payload map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"revision":{"clientId":"c1","version":8},"id":"p1","uri":"x","allowRemoteAccess":true,
			"component":{"id":"p1","name":"n","state":"STOPPED","type":"INPUT_PORT","concurrentlySchedulableTaskCount":10}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	entity, err := c.UpdatePort(context.Background(), srv.URL+"/input-ports/p1", domain.PortUpdateRequest{
		Revision: domain.Revision{ClientID: "c1", Version: 7},
		Component: domain.PortUpdate{
			ID:                               "p1",
			Name:                             ptr("n"),
			Comments:                         ptr(""),
			ConcurrentlySchedulableTaskCount: ptr(domain.TaskCount("10")),
			State:                            ptr(domain.StateStopped),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "application/json", headers.Get("Accept"))

	component := payload["component"].(map[string]any)
	assert.Equal(t, "10", component["concurrentlySchedulableTaskCount"])
	assert.Equal(t, "STOPPED", component["state"])
	assert.Equal(t, "", component["comments"])
	assert.NotContains(t, component, "allowRemoteAccess")
	assert.Equal(t, false, payload["disconnectedNodeAcknowledged"])
	assert.Equal(t, map[string]any{"clientId": "c1", "version": float64(7)}, payload["revision"])

	assert.Equal(t, int64(8), entity.Revision.Version)
	assert.Equal(t, 10, entity.Component.ConcurrentlySchedulableTaskCount)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "validation lines",
			status: http.StatusBadRequest,
			body:   "Port name cannot be blank.\nConcurrent tasks must be a positive integer.\n",
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"Port name cannot be blank.", "Concurrent tasks must be a positive integer."}, verr.Messages)
			},
		},
		{
			name:   "empty validation body",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"Bad Request"}, verr.Messages)
			},
		},
		{
			name:   "conflict",
			status: http.StatusConflict,
			body:   "stale\n",
			check: func(t *testing.T, err error) {
				var rerr *domain.RequestError
				require.ErrorAs(t, err, &rerr)
				assert.True(t, rerr.IsConflict())
				assert.Equal(t, "stale", rerr.Message)
				assert.Equal(t, "409 Conflict: stale", rerr.Error())
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   "boom\nsecond line",
			check: func(t *testing.T, err error) {
				var verr *domain.ValidationError
				assert.False(t, errors.As(err, &verr), "only 400 is a validation failure")
				var rerr *domain.RequestError
				require.ErrorAs(t, err, &rerr)
				assert.Equal(t, http.StatusInternalServerError, rerr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).UpdatePort(context.Background(), srv.URL+"/output-ports/p1", domain.PortUpdateRequest{})
			tt.check(t, err)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	uri := srv.URL + "/input-ports/p1"
	srv.Close()

	_, err := NewClient(srv.URL).UpdatePort(context.Background(), uri, domain.PortUpdateRequest{})
	var rerr *domain.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.StatusCode)
	assert.Error(t, rerr.Err)
}

func TestClient_PortURI(t *testing.T) {
	c := NewClient("http://flow.local/nifi-api/")
	assert.Equal(t, "http://flow.local/nifi-api/input-ports/a", c.PortURI(domain.TypeInputPort, "a"))
	assert.Equal(t, "http://flow.local/nifi-api/output-ports/b", c.PortURI(domain.TypeOutputPort, "b"))
}
