package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(receipt).Error)
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := conn(ctx, r.db).
		Preload("Quote").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(receipt).Error
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := conn(ctx, r.db).
		Where("quote_id = ?", quoteID).
		Order("receipt_date ASC, created_at ASC, id ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := conn(ctx, r.db).Model(&entity.Receipt{}).
		Scopes(SearchScope(params.Search, "receipt_number", "client_name", "concept"))

	if params.QuoteID != nil {
		query = query.Where("quote_id = ?", *params.QuoteID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Quote").
		Order("receipt_date DESC, created_at DESC").
		Find(&receipts).Error

	return receipts, total, err
}

func (r *receiptRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return conn(ctx, r.db).Model(&entity.Receipt{}).
		Where("id = ?", id).
		Update("sent_at", sentAt).Error
}
