package service

import (
	"context"
	"errors"

	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds how often a create is re-run after losing a number race.
const maxNumberAttempts = 3

// withNumberRetry runs create, which must allocate a number and insert in one
// transaction, again when the insert hits the unique number index.
func withNumberRetry(ctx context.Context, log *zap.Logger, kind enum.DocumentKind, create func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := create(ctx)
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		if attempt == maxNumberAttempts {
			log.Error("document number still taken after retries",
				zap.String("kind", string(kind)), zap.Int("attempts", attempt), zap.Error(err))
			return apperror.ErrConflict
		}
		log.Warn("document number collision, retrying",
			zap.String("kind", string(kind)), zap.Int("attempt", attempt))
	}
}
