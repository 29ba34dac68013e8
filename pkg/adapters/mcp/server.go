package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/portcfg"
	"github.com/aretw0/portcfg/internal/logging"
	"github.com/aretw0/portcfg/pkg/adapters/memory"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/editor"
	"github.com/aretw0/portcfg/pkg/ports"
	"github.com/aretw0/portcfg/pkg/selection"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const portsResourceURI = "portcfg://ports"

// PortService is the remote side the tools talk to.
type PortService interface {
	ports.PortUpdater
	ports.PortFetcher
	PortURI(kind domain.ComponentType, id string) string
}

// ShowResponse is the result of show_port.
type ShowResponse struct {
	Port *domain.PortEntity `json:"port" jsonschema_description:"The port as reported by the service"`
}

// ConfigureResponse is the result of configure_port.
type ConfigureResponse struct {
	Outcome  string             `json:"outcome" jsonschema_description:"applied, rejected or failed"`
	Port     *domain.PortEntity `json:"port,omitempty" jsonschema_description:"The updated port (applied only)"`
	Messages []string           `json:"messages,omitempty" jsonschema_description:"Validation messages to correct (rejected only)"`
	Error    string             `json:"error,omitempty" jsonschema_description:"Failure description (failed only)"`
}

// Server exposes port configuration as MCP tools.
// Each configure_port call drives a fresh editor through open, edit and apply.
type Server struct {
	service    PortService
	store      ports.PortStore
	editorOpts []editor.Option
	logger     *slog.Logger
	metrics    http.Handler
	mcpServer  *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithEditorOptions passes options to every editor the server creates.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(s *Server) {
		s.editorOpts = append(s.editorOpts, opts...)
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler serves h at /metrics next to the SSE endpoints.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(service PortService, store ports.PortStore, opts ...Option) *Server {
	s := &Server{
		service:   service,
		store:     store,
		mcpServer: server.NewMCPServer("portcfg-mcp", strings.TrimSpace(portcfg.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: show_port
	showTool := mcp.NewTool("show_port",
		mcp.WithDescription("Fetch the current configuration of an input or output port."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("input", "output"), mcp.Description("Port kind")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Port ID")),
		mcp.WithOutputSchema[ShowResponse](),
	)
	s.mcpServer.AddTool(showTool, mcp.NewStructuredToolHandler(s.handleShow))

	// TOOL: configure_port
	configureTool := mcp.NewTool("configure_port",
		mcp.WithDescription("Change the configuration of a port. Omitted fields keep their current value. "+
			"A rejected outcome lists the messages to correct before retrying."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("input", "output"), mcp.Description("Port kind")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Port ID")),
		mcp.WithString("name", mcp.Description("New port name")),
		mcp.WithString("comments", mcp.Description("New comments")),
		mcp.WithBoolean("enabled", mcp.Description("Enable (true) or disable (false) the port")),
		mcp.WithBoolean("allow_remote_access", mcp.Description("Expose the port for site-to-site transfer")),
		mcp.WithString("concurrent_tasks", mcp.Description("Concurrent task count (remote-access ports only)")),
		mcp.WithOutputSchema[ConfigureResponse](),
	)
	s.mcpServer.AddTool(configureTool, mcp.NewStructuredToolHandler(s.handleConfigure))
}

func (s *Server) fetch(ctx context.Context, args map[string]interface{}) (*domain.PortEntity, error) {
	rawKind, _ := args["kind"].(string)
	id, _ := args["id"].(string)

	kind, err := domain.ParsePortKind(rawKind)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	return s.service.GetPort(ctx, s.service.PortURI(kind, id))
}

func (s *Server) handleShow(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ShowResponse, error) {
	port, err := s.fetch(ctx, args)
	if err != nil {
		return ShowResponse{}, fmt.Errorf("show failed: %w", err)
	}
	return ShowResponse{Port: port}, nil
}

func (s *Server) handleConfigure(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ConfigureResponse, error) {
	port, err := s.fetch(ctx, args)
	if err != nil {
		return ConfigureResponse{}, fmt.Errorf("configure failed: %w", err)
	}

	inbox := &memory.Inbox{}
	opts := append([]editor.Option{}, s.editorOpts...)
	opts = append(opts,
		editor.WithNoticePresenter(inbox),
		editor.WithErrorHandler(inbox),
	)
	e := editor.New(s.service, s.store, opts...)

	sel, err := selection.FromEntity(port)
	if err != nil {
		return ConfigureResponse{}, err
	}
	if !e.ShowConfiguration(ctx, sel) {
		return ConfigureResponse{}, fmt.Errorf("port %s cannot be configured", port.ID)
	}
	defer e.Close(ctx)

	if err := applyArgs(e, args); err != nil {
		return ConfigureResponse{}, err
	}

	outcome, err := e.Apply(ctx)
	if err != nil {
		return ConfigureResponse{}, err
	}

	resp := ConfigureResponse{Outcome: string(outcome.Kind), Port: outcome.Entity}
	if outcome.Notice != nil {
		resp.Messages = outcome.Notice.Messages
	}
	if outcome.Kind == editor.OutcomeFailed && outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}
	s.logger.Debug("MCP configure_port", "port_id", port.ID, "outcome", outcome.Kind)
	return resp, nil
}

func applyArgs(e *editor.Editor, args map[string]interface{}) error {
	if v, ok := args["name"].(string); ok {
		if err := e.SetName(v); err != nil {
			return err
		}
	}
	if v, ok := args["comments"].(string); ok {
		if err := e.SetComments(v); err != nil {
			return err
		}
	}
	if v, ok := args["enabled"].(bool); ok {
		if err := e.SetEnabled(domain.ToggleOf(v)); err != nil {
			return err
		}
	}
	if v, ok := args["allow_remote_access"].(bool); ok {
		if err := e.SetAllowRemoteAccess(domain.ToggleOf(v)); err != nil {
			return err
		}
	}
	if v, ok := args["concurrent_tasks"]; ok {
		if err := e.SetConcurrentTasks(fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) registerResources() {
	// EXPOSE: portcfg://ports
	s.mcpServer.AddResource(mcp.NewResource(portsResourceURI, "Cached Ports",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list cached ports: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      portsResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
