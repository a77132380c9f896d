package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/utils"
)

// DefaultSnapshotTTL is used when no TTL is configured
const DefaultSnapshotTTL = 10 * time.Minute

// Store keeps health snapshots in Redis
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store; ttl <= 0 means DefaultSnapshotTTL
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// SaveSnapshot stores the snapshot with the store TTL
func (s *Store) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	data, err := utils.JSON.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, LastSnapshotKey(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the stored snapshot, ok=false on a miss
func (s *Store) GetSnapshot(ctx context.Context) (domain.Snapshot, bool, error) {
	data, err := s.client.Get(ctx, LastSnapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Snapshot{}, false, nil
		}
		return domain.Snapshot{}, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := utils.JSON.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
