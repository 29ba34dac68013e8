package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/portcfg/pkg/domain"
)

// Fixtures reads port definitions from a Loam document repository, one document
// per port.
type Fixtures struct {
	Repo *loam.TypedRepository[PortMetadata]
}

// New creates a fixtures reader over repo.
func New(repo *loam.TypedRepository[PortMetadata]) *Fixtures {
	return &Fixtures{Repo: repo}
}

// Open initializes a read-only repository at dir.
func Open(dir string) (*Fixtures, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode decodes numbers as json.Number, which TaskCount accepts.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PortMetadata](repo)), nil
}

// Get loads a single port by document id.
func (f *Fixtures) Get(ctx context.Context, id string) (*domain.PortEntity, error) {
	doc, err := f.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return toEntity(doc.ID, doc.Data, doc.Content)
}

// Load reads every port in the repository, ordered by id.
// List only carries metadata, so each document is read again for its body.
func (f *Fixtures) Load(ctx context.Context) ([]*domain.PortEntity, error) {
	docs, err := f.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	entities := make([]*domain.PortEntity, 0, len(docs))
	for _, doc := range docs {
		entity, err := f.Get(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[entity.ID]; ok {
			return nil, fmt.Errorf("collision detected: port '%s' is defined in both '%s' and '%s'", entity.ID, existing, doc.ID)
		}
		seen[entity.ID] = doc.ID
		entities = append(entities, entity)
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities, nil
}

func toEntity(docID string, meta PortMetadata, content string) (*domain.PortEntity, error) {
	id := meta.ID
	if id == "" {
		id = docID
	}
	id = trimExtension(id)

	kind, err := parseKind(meta.Type)
	if err != nil {
		return nil, fmt.Errorf("port %s: %w", id, err)
	}

	component := &domain.PortComponent{
		ID:                id,
		ParentGroupID:     meta.ParentGroupID,
		Name:              meta.Name,
		Comments:          strings.TrimSpace(content),
		Type:              kind,
		AllowRemoteAccess: meta.AllowRemoteAccess,
	}
	if component.Name == "" {
		component.Name = id
	}

	if meta.State != "" {
		state, err := domain.ParseScheduledState(strings.ToUpper(meta.State))
		if err != nil {
			return nil, fmt.Errorf("port %s: %w", id, err)
		}
		component.State = state
	}

	if meta.ConcurrentTasks != "" {
		n, err := meta.ConcurrentTasks.Int()
		if err != nil || n < 1 {
			return nil, fmt.Errorf("port %s: concurrent_tasks must be a positive integer, got %q", id, meta.ConcurrentTasks)
		}
		component.ConcurrentlySchedulableTaskCount = n
	}

	return &domain.PortEntity{
		ID:                id,
		AllowRemoteAccess: meta.AllowRemoteAccess,
		Component:         component,
	}, nil
}

func parseKind(raw string) (domain.ComponentType, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.TypeInputPort, nil
	}
	return domain.ParsePortKind(raw)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
