package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

var quoteSortColumns = map[string]string{
	"created_at":   "created_at",
	"quote_number": "quote_number",
	"client_name":  "client_name",
	"total":        "total",
	"status":       "status",
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	db := conn(ctx, r.db)
	if err := db.Omit(clause.Associations).Create(quote).Error; err != nil {
		return translate(err)
	}
	if len(quote.Items) == 0 {
		return nil
	}
	for i := range quote.Items {
		quote.Items[i].QuoteID = quote.ID
	}
	return db.Create(&quote.Items).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetByNumber(ctx context.Context, number string) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).First(&quote, "quote_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(quote).Error
}

func (r *quoteRepository) ReplaceItems(ctx context.Context, quoteID uuid.UUID, items []entity.QuoteItem) error {
	db := conn(ctx, r.db)
	if err := db.Where("quote_id = ?", quoteID).Delete(&entity.QuoteItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].QuoteID = quoteID
	}
	return db.Create(&items).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&entity.Receipt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quote_id = ?", id).Delete(&entity.QuoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Quote{}, "id = ?", id).Error
	})
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := conn(ctx, r.db).Model(&entity.Quote{}).
		Scopes(SearchScope(params.Search, "quote_number", "client_name", "project_name"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	if col, ok := quoteSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order(sortBy + " " + sortOrder).
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	return conn(ctx, r.db).Model(&entity.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *quoteRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time, validUntil *time.Time) error {
	updates := map[string]interface{}{
		"sent_at": sentAt,
		"status":  enum.QuoteStatusSent,
	}
	if validUntil != nil {
		updates["valid_until"] = *validUntil
	}
	return conn(ctx, r.db).Model(&entity.Quote{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *quoteRepository) ExpireSent(ctx context.Context, today time.Time) (int64, error) {
	res := conn(ctx, r.db).Model(&entity.Quote{}).
		Where("status = ? AND valid_until IS NOT NULL AND valid_until < ?", enum.QuoteStatusSent, today).
		Update("status", enum.QuoteStatusExpired)
	return res.RowsAffected, res.Error
}
