package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by client-supplied idempotency keys
type IdempotencyRepository interface {
	// GetByKey retrieves an unexpired idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
