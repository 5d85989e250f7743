package entity

import (
	"time"

	"github.com/sangkips/remodela-api/internal/domain/enum"
)

// DocumentSequence is the per-year counter behind quote and receipt numbers.
// Rows are created lazily and never deleted.
type DocumentSequence struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Kind       enum.DocumentKind `gorm:"size:20;not null;uniqueIndex:idx_document_sequences_kind_year" json:"kind"`
	Year       int               `gorm:"not null;uniqueIndex:idx_document_sequences_kind_year" json:"year"`
	LastNumber int               `gorm:"not null;default:0" json:"last_number"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// TableName returns the table name for the DocumentSequence model
func (DocumentSequence) TableName() string {
	return "document_sequences"
}
