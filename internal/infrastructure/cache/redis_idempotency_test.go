package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisIdempotencyStore_KeyLayout(t *testing.T) {
	s := NewRedisIdempotencyStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "")
	defer s.Close()

	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, "remodela:idempotency:11111111-1111-1111-1111-111111111111:abc", s.key("abc", id))
}

func TestRedisIdempotencyStore_SkipsExpiredWrites(t *testing.T) {
	s := NewRedisIdempotencyStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "test:")
	defer s.Close()

	// No round trip happens for an already-expired entry, so the dead address is never dialed.
	err := s.Create(context.Background(), &entity.IdempotencyKey{
		Key:       "k",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)
	assert.NoError(t, s.DeleteExpired(context.Background()))
}
