package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
)

const defaultKeyPrefix = "remodela:idempotency:"

var _ domainRepo.IdempotencyRepository = (*RedisIdempotencyStore)(nil)

// RedisIdempotencyStore keeps idempotent responses in Redis. Expiry is left to
// key TTLs, so DeleteExpired has nothing to do.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisIdempotencyStore(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisIdempotencyStore{client: client, keyPrefix: keyPrefix, now: time.Now}
}

func (s *RedisIdempotencyStore) key(key string, userID uuid.UUID) string {
	return s.keyPrefix + userID.String() + ":" + key
}

func (s *RedisIdempotencyStore) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	raw, err := s.client.Get(ctx, s.key(key, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	var ikey entity.IdempotencyKey
	if err := json.Unmarshal(raw, &ikey); err != nil {
		return nil, fmt.Errorf("failed to decode idempotency key: %w", err)
	}
	return &ikey, nil
}

// Create uses SETNX so the first stored response wins.
func (s *RedisIdempotencyStore) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	now := s.now()
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = now
	}
	ttl := ikey.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(ikey)
	if err != nil {
		return err
	}
	if err := s.client.SetNX(ctx, s.key(ikey.Key, ikey.UserID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}

func (s *RedisIdempotencyStore) DeleteExpired(context.Context) error {
	return nil
}

func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}
