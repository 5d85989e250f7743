package repository

import (
	"context"

	"github.com/sangkips/remodela-api/internal/domain/enum"
)

// SequenceRepository hands out per-year document counters.
type SequenceRepository interface {
	// Next atomically increments and returns the counter for (kind, year).
	// It must run inside the transaction that inserts the numbered document so
	// a rollback releases the number. The counter never falls behind the
	// highest number already stored for that kind and year.
	Next(ctx context.Context, kind enum.DocumentKind, year int) (int, error)
	Current(ctx context.Context, kind enum.DocumentKind, year int) (int, error)
}
