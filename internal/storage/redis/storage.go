package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/storage"
)

// Storage keeps the roster document in a single Redis string key
type Storage struct {
	client *redis.Client
	key    string
}

// New connects to Redis and verifies the connection
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		key:    rosterKey(cfg.Roster),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadRoster(ctx context.Context) ([]model.Player, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Player{}, nil
		}
		return nil, fmt.Errorf("%w: get %s: %v", model.ErrCorruptRoster, s.key, err)
	}
	return storage.DecodeRoster(data)
}

func (s *Storage) SaveRoster(ctx context.Context, players []model.Player) error {
	data, err := storage.EncodeRoster(players)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	// No TTL: the roster lives until someone overwrites it
	return s.client.Set(ctx, s.key, data, 0).Err()
}
