package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quote is a price quotation (cotización) sent to a prospective client
type Quote struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	QuoteNumber        string                      `gorm:"size:32;uniqueIndex;not null" json:"quote_number"`
	ClientName         string                      `gorm:"size:255;not null" json:"client_name"`
	ClientEmail        string                      `gorm:"size:255" json:"client_email,omitempty"`
	ClientPhone        string                      `gorm:"size:50" json:"client_phone,omitempty"`
	ClientAddress      string                      `gorm:"type:text" json:"client_address,omitempty"`
	ProjectName        string                      `gorm:"size:255" json:"project_name,omitempty"`
	ProjectDescription string                      `gorm:"type:text" json:"project_description,omitempty"`
	Status             enum.QuoteStatus            `gorm:"size:20;not null;default:'draft';index" json:"status"`
	ValidUntil         *time.Time                  `gorm:"type:date" json:"valid_until,omitempty"`
	Subtotal           decimal.Decimal             `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	Tax                decimal.Decimal             `gorm:"type:decimal(15,2);not null;default:0" json:"tax"`
	Discount           decimal.Decimal             `gorm:"type:decimal(15,2);not null;default:0" json:"discount"`
	Total              decimal.Decimal             `gorm:"type:decimal(15,2);not null;default:0" json:"total"`
	Notes              string                      `gorm:"type:text" json:"notes,omitempty"`
	Images             datatypes.JSONSlice[string] `json:"images"`
	SentAt             *time.Time                  `json:"sent_at,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`

	// Relationships
	Items []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteItem is a priced line of work on a quote
type QuoteItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new quote item
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}

// IsExpired reports whether a sent quote's validity has lapsed as of today.
func (q *Quote) IsExpired(today time.Time) bool {
	if q.Status != enum.QuoteStatusSent || q.ValidUntil == nil {
		return false
	}
	y, m, d := q.ValidUntil.Date()
	ty, tm, td := today.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Before(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC))
}
