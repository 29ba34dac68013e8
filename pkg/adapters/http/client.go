package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/portcfg/internal/logging"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/flow"
)

// Client speaks the port update wire contract.
// It implements ports.PortUpdater and ports.PortFetcher.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client rooted at baseURL, e.g. "http://localhost:8080/nifi-api".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// PortURI returns the resource uri of a port.
func (c *Client) PortURI(kind domain.ComponentType, id string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, flow.PortPath(kind), id)
}

// UpdatePort sends a PUT to uri. A 2xx response is decoded as the updated entity.
func (c *Client) UpdatePort(ctx context.Context, uri string, req domain.PortUpdateRequest) (*domain.PortEntity, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode port update: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uri, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.RequestError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Updating port", "uri", uri, "version", req.Revision.Version)
	return c.do(httpReq)
}

// GetPort fetches the entity at uri.
func (c *Client) GetPort(ctx context.Context, uri string) (*domain.PortEntity, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &domain.RequestError{Err: err}
	}
	return c.do(httpReq)
}

// ListPorts fetches every port known to the service.
func (c *Client) ListPorts(ctx context.Context) ([]*domain.PortEntity, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flow/ports", nil)
	if err != nil {
		return nil, &domain.RequestError{Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}
	var list PortsEntity
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &domain.RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode ports: %w", err)}
	}
	return list.Ports, nil
}

func (c *Client) do(req *http.Request) (*domain.PortEntity, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := decodeError(resp)
		c.logger.Debug("Port request failed", "method", req.Method, "uri", req.URL.String(), "status", resp.StatusCode)
		return nil, err
	}

	var entity domain.PortEntity
	if err := json.NewDecoder(resp.Body).Decode(&entity); err != nil {
		return nil, &domain.RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode port entity: %w", err)}
	}
	return &entity, nil
}
