package redis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/portcfg/internal/logging"
	backend "github.com/redis/go-redis/v9"
)

// DefaultAcknowledgementKey holds the operator's acknowledgement that cluster nodes
// are disconnected.
const DefaultAcknowledgementKey = "portcfg:cluster:disconnection-acknowledged"

// Acknowledgement implements ports.DisconnectionState on a Redis key, shared by every
// editor that points at the same server.
type Acknowledgement struct {
	client *backend.Client
	key    string
	logger *slog.Logger
}

// NewAcknowledgement creates the flag at key, or DefaultAcknowledgementKey when empty.
func NewAcknowledgement(client *backend.Client, key string, logger *slog.Logger) *Acknowledgement {
	if key == "" {
		key = DefaultAcknowledgementKey
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Acknowledgement{client: client, key: key, logger: logger}
}

// IsDisconnectionAcknowledged reports the stored flag. A missing key or a Redis error
// reads as not acknowledged.
func (a *Acknowledgement) IsDisconnectionAcknowledged(ctx context.Context) bool {
	v, err := a.client.Get(ctx, a.key).Result()
	if err != nil {
		if !errors.Is(err, backend.Nil) {
			a.logger.Warn("Failed to read disconnection acknowledgement", "key", a.key, "err", err)
		}
		return false
	}
	return v == "1"
}

// Acknowledge stores the flag.
func (a *Acknowledgement) Acknowledge(ctx context.Context, acknowledged bool) error {
	if !acknowledged {
		return a.client.Del(ctx, a.key).Err()
	}
	return a.client.Set(ctx, a.key, "1", 0).Err()
}
