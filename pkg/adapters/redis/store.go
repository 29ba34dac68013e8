package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/portcfg/internal/logging"
	"github.com/aretw0/portcfg/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "portcfg:port:"

// indexName is the key suffix of the id index. A port with this id would share
// the index key, so the store refuses it.
const indexName = "index"

// ErrReservedID is returned for an id whose key is taken by the index.
var ErrReservedID = errors.New("port id is reserved by the redis store index")

// Store implements ports.PortStore using Redis.
// Entities are stored as JSON under prefix+id; a sorted set at prefix+"index" tracks
// the ids, scored by expiry so List can drop expired entries lazily.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithTTL expires cached entities after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient creates a store on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Client returns the underlying client.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + indexName
}

func (s *Store) checkID(id string) error {
	if id == indexName {
		return fmt.Errorf("%w: %q", ErrReservedID, id)
	}
	return nil
}

// Set replaces the cached entity.
func (s *Store) Set(ctx context.Context, entity *domain.PortEntity) error {
	if entity == nil || entity.ID == "" {
		return fmt.Errorf("port entity with id is required")
	}
	if err := s.checkID(entity.ID); err != nil {
		return err
	}

	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal port %s: %w", entity.ID, err)
	}

	score := float64(1<<53 - 1)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(entity.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: entity.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache port %s: %w", entity.ID, err)
	}
	return nil
}

// Get retrieves the cached entity.
func (s *Store) Get(ctx context.Context, id string) (*domain.PortEntity, error) {
	if s.checkID(id) != nil {
		return nil, domain.ErrPortNotFound
	}
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrPortNotFound
		}
		return nil, fmt.Errorf("failed to load port %s: %w", id, err)
	}

	var entity domain.PortEntity
	if err := json.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal port %s: %w", id, err)
	}
	return &entity, nil
}

// Delete removes the entity and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.checkID(id); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete port %s: %w", id, err)
	}
	return nil
}

// List returns the cached port ids in index order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.ttl > 0 {
		now := strconv.FormatInt(time.Now().Unix(), 10)
		if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
			s.logger.Warn("Failed to prune expired index entries", "err", err)
		}
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	return ids, nil
}
