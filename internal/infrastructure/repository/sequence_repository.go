package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/domain/numbering"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new document sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// issued maps each kind to the table and column holding its numbers
var issued = map[enum.DocumentKind]struct{ table, column string }{
	enum.DocumentKindQuote:   {"quotes", "quote_number"},
	enum.DocumentKindReceipt: {"receipts", "receipt_number"},
}

// Next never hands out a number at or below one already issued, so rows
// imported or typed in by hand push the counter forward instead of colliding.
func (r *sequenceRepository) Next(ctx context.Context, kind enum.DocumentKind, year int) (int, error) {
	db := conn(ctx, r.db)

	if err := r.ensure(db, kind, year); err != nil {
		return 0, err
	}
	floor, err := r.highestIssued(db, kind, year)
	if err != nil {
		return 0, err
	}

	res := db.Model(&entity.DocumentSequence{}).
		Where("kind = ? AND year = ?", kind, year).
		Updates(map[string]interface{}{
			"last_number": gorm.Expr("CASE WHEN last_number < ? THEN ? ELSE last_number END + 1", floor, floor),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("increment %s sequence: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%s sequence for %d missing", kind, year)
	}

	return r.current(db, kind, year)
}

func (r *sequenceRepository) Current(ctx context.Context, kind enum.DocumentKind, year int) (int, error) {
	return r.current(conn(ctx, r.db), kind, year)
}

func (r *sequenceRepository) current(db *gorm.DB, kind enum.DocumentKind, year int) (int, error) {
	var seq entity.DocumentSequence
	err := db.Where("kind = ? AND year = ?", kind, year).Take(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s sequence: %w", kind, err)
	}
	return seq.LastNumber, nil
}

// ensure creates the counter row on first use of a year
func (r *sequenceRepository) ensure(db *gorm.DB, kind enum.DocumentKind, year int) error {
	row := entity.DocumentSequence{Kind: kind, Year: year}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "year"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("create %s sequence: %w", kind, err)
	}
	return nil
}

func (r *sequenceRepository) highestIssued(db *gorm.DB, kind enum.DocumentKind, year int) (int, error) {
	src, ok := issued[kind]
	if !ok {
		return 0, fmt.Errorf("unknown document kind %q", kind)
	}

	var numbers []string
	err := db.Table(src.table).
		Where(src.column+" LIKE ?", numbering.YearPrefix(kind.Prefix(), year)+"%").
		Order("LENGTH(" + src.column + ") DESC, " + src.column + " DESC").
		Limit(1).
		Pluck(src.column, &numbers).Error
	if err != nil {
		return 0, fmt.Errorf("scan issued %s numbers: %w", kind, err)
	}
	if len(numbers) == 0 {
		return 0, nil
	}

	seq, _ := numbering.Sequence(numbers[0], kind.Prefix(), year)
	return seq, nil
}
