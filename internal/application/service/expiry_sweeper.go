package service

import (
	"context"
	"time"

	"github.com/sangkips/remodela-api/internal/domain/repository"
	"go.uber.org/zap"
)

// ExpirySweeper periodically moves sent quotes past their validity date to expired.
type ExpirySweeper struct {
	quotes      repository.QuoteRepository
	idempotency repository.IdempotencyRepository
	calendar    *Calendar
	interval    time.Duration
	log         *zap.Logger
}

// NewExpirySweeper also purges stale idempotency keys on each pass when idempotency is not nil.
func NewExpirySweeper(
	quotes repository.QuoteRepository,
	idempotency repository.IdempotencyRepository,
	calendar *Calendar,
	interval time.Duration,
	log *zap.Logger,
) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExpirySweeper{
		quotes:      quotes,
		idempotency: idempotency,
		calendar:    calendar,
		interval:    interval,
		log:         log.Named("expiry"),
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.log.Error("expiry sweep failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep expires overdue quotes and returns how many changed.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.quotes.ExpireSent(ctx, s.calendar.Today())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("quotes expired", zap.Int64("count", n))
	}

	if s.idempotency != nil {
		if err := s.idempotency.DeleteExpired(ctx); err != nil {
			s.log.Warn("idempotency cleanup failed", zap.Error(err))
		}
	}
	return n, nil
}
