package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt records a payment received against a quote
type Receipt struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber string             `gorm:"size:32;uniqueIndex;not null" json:"receipt_number"`
	QuoteID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"quote_id"`
	ClientName    string             `gorm:"size:255;not null" json:"client_name"`
	ClientEmail   string             `gorm:"size:255" json:"client_email,omitempty"`
	Amount        decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	ReceiptDate   time.Time          `gorm:"type:date;not null;index" json:"receipt_date"`
	Concept       string             `gorm:"type:text;not null" json:"concept"`
	Notes         string             `gorm:"type:text" json:"notes,omitempty"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Quote *Quote `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"quote,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// Payment projects the receipt onto the ledger.
func (r *Receipt) Payment() ledger.Payment {
	return ledger.Payment{
		ID:          r.ID,
		Amount:      r.Amount,
		ReceiptDate: r.ReceiptDate,
		CreatedAt:   r.CreatedAt,
	}
}

// Payments projects a receipt list onto the ledger.
func Payments(receipts []Receipt) []ledger.Payment {
	out := make([]ledger.Payment, len(receipts))
	for i := range receipts {
		out[i] = receipts[i].Payment()
	}
	return out
}
