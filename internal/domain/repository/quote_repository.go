package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	// Create inserts the quote and its items
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetByNumber(ctx context.Context, number string) (*entity.Quote, error)
	// GetWithItems loads the quote with items ordered by position
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// GetForUpdate loads the quote and locks its row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// Update saves scalar columns only; items are handled by ReplaceItems
	Update(ctx context.Context, quote *entity.Quote) error
	ReplaceItems(ctx context.Context, quoteID uuid.UUID, items []entity.QuoteItem) error
	// Delete removes the quote together with its items and receipts
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error
	// MarkSent records a successful delivery
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time, validUntil *time.Time) error
	// ExpireSent moves sent quotes whose validity ended before today to expired
	ExpireSent(ctx context.Context, today time.Time) (int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	SortBy     string
	SortOrder  string
}
