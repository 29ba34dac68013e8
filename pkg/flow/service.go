package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/portcfg/internal/logging"
	"github.com/aretw0/portcfg/pkg/domain"
)

const defaultModifier = "anonymous"

// Service is the authoritative holder of port configuration.
type Service struct {
	mu       sync.RWMutex
	ports    map[string]*domain.PortEntity
	baseURI  string
	modifier string
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithBaseURI sets the prefix of the uri advertised on each entity,
// e.g. "http://localhost:8080/nifi-api".
func WithBaseURI(base string) Option {
	return func(s *Service) {
		s.baseURI = strings.TrimRight(base, "/")
	}
}

// WithModifier sets the identity recorded as lastModifier on each write.
func WithModifier(name string) Option {
	return func(s *Service) {
		s.modifier = name
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an empty service.
func NewService(opts ...Option) *Service {
	s := &Service{
		ports:    make(map[string]*domain.PortEntity),
		modifier: defaultModifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// PortPath returns the collection segment for a port type.
func PortPath(kind domain.ComponentType) string {
	if kind == domain.TypeOutputPort {
		return "output-ports"
	}
	return "input-ports"
}

// Seed installs ports, replacing any with the same id. Entity id, uri and the
// entity-level remote access flag are derived from the component.
func (s *Service) Seed(entities ...*domain.PortEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entities {
		if e == nil || e.Component == nil || e.Component.ID == "" {
			return fmt.Errorf("seed port: component with id is required")
		}
		if !e.Component.Type.IsPort() {
			return fmt.Errorf("seed port %s: unsupported type %q", e.Component.ID, e.Component.Type)
		}
		c := e.Clone()
		c.ID = c.Component.ID
		c.AllowRemoteAccess = c.Component.AllowRemoteAccess
		c.URI = s.uri(c.Component.Type, c.ID)
		if c.Component.State == "" {
			c.Component.State = domain.StateStopped
		}
		if c.Component.ConcurrentlySchedulableTaskCount == 0 {
			c.Component.ConcurrentlySchedulableTaskCount = 1
		}
		s.ports[c.ID] = c
	}
	return nil
}

func (s *Service) uri(kind domain.ComponentType, id string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURI, PortPath(kind), id)
}

// GetPort returns the port of the given type. A port of the other type is not found.
func (s *Service) GetPort(ctx context.Context, kind domain.ComponentType, id string) (*domain.PortEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.ports[id]
	if !ok || p.Kind() != kind {
		return nil, fmt.Errorf("%w: %s", domain.ErrPortNotFound, id)
	}
	return p.Clone(), nil
}

// ListPorts returns every port ordered by id.
func (s *Service) ListPorts(ctx context.Context) []*domain.PortEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.PortEntity, 0, len(s.ports))
	for _, p := range s.ports {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdatePort applies an update request to the port addressed by kind and id.
//
// Errors: *domain.ValidationError for correctable input, *domain.ConflictError when
// the write cannot be applied to the current state, domain.ErrPortNotFound.
func (s *Service) UpdatePort(ctx context.Context, kind domain.ComponentType, id string, req domain.PortUpdateRequest) (*domain.PortEntity, error) {
	if req.Component.ID != id {
		return nil, &domain.ValidationError{Messages: []string{
			fmt.Sprintf("The input port id (%s) in the request body does not equal the port id of the requested resource (%s).", req.Component.ID, id),
		}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.ports[id]
	if !ok || current.Kind() != kind {
		return nil, fmt.Errorf("%w: %s", domain.ErrPortNotFound, id)
	}

	if req.Revision.Version != current.Revision.Version {
		return nil, &domain.ConflictError{Message: fmt.Sprintf(
			"[%d, %s, %s] is not the most up-to-date revision. This component appears to have been modified",
			req.Revision.Version, req.Revision.ClientID, id,
		)}
	}

	if err := Validate(req.Component); err != nil {
		s.logger.Debug("Port update rejected", "port_id", id, "err", err)
		return nil, err
	}

	next := current.Clone()
	if err := s.verifyUpdate(next, req.Component); err != nil {
		return nil, err
	}
	s.apply(next, req.Component)

	next.Revision = domain.Revision{
		ClientID:     req.Revision.ClientID,
		Version:      current.Revision.Version + 1,
		LastModifier: s.modifier,
	}
	s.ports[id] = next

	s.logger.Info("Port updated",
		"port_id", id,
		"type", kind,
		"version", next.Revision.Version,
		"state", next.Component.State,
	)
	return next.Clone(), nil
}

func (s *Service) verifyUpdate(port *domain.PortEntity, update domain.PortUpdate) error {
	c := port.Component

	if update.State != nil {
		if _, err := transition(c.ID, c.State, *update.State); err != nil {
			return err
		}
	}

	name := c.Name
	if update.Name != nil {
		name = *update.Name
	}
	public := c.AllowRemoteAccess
	if update.AllowRemoteAccess != nil {
		public = *update.AllowRemoteAccess
	}
	if public && (name != c.Name || !c.AllowRemoteAccess) {
		for _, other := range s.ports {
			if other.ID == c.ID || other.Kind() != c.Type || !other.Component.AllowRemoteAccess {
				continue
			}
			if other.Component.Name == name {
				return &domain.ConflictError{Message: "Public port name should be unique in the entire flow."}
			}
		}
	}
	return nil
}

func (s *Service) apply(port *domain.PortEntity, update domain.PortUpdate) {
	c := port.Component
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Comments != nil {
		c.Comments = *update.Comments
	}
	if update.ConcurrentlySchedulableTaskCount != nil {
		// Validated as a positive integer.
		n, _ := update.ConcurrentlySchedulableTaskCount.Int()
		c.ConcurrentlySchedulableTaskCount = n
	}
	if update.AllowRemoteAccess != nil {
		c.AllowRemoteAccess = *update.AllowRemoteAccess
		port.AllowRemoteAccess = *update.AllowRemoteAccess
	}
	if update.State != nil {
		c.State, _ = transition(c.ID, c.State, *update.State)
	}
}
