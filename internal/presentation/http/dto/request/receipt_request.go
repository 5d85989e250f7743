package request

import "github.com/shopspring/decimal"

// CreateReceiptRequest records a payment against a quote
type CreateReceiptRequest struct {
	QuoteID       string          `json:"quote_id" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required,payment_method"`
	ReceiptDate   *string         `json:"receipt_date" binding:"omitempty,datetime=2006-01-02"`
	Concept       string          `json:"concept" binding:"required"`
	Notes         string          `json:"notes"`
}

// ReceiptRequest carries the editable receipt fields. The quote cannot change.
type ReceiptRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required,payment_method"`
	ReceiptDate   *string         `json:"receipt_date" binding:"omitempty,datetime=2006-01-02"`
	Concept       string          `json:"concept" binding:"required"`
	Notes         string          `json:"notes"`
}

// ReceiptFilterRequest represents receipt list query parameters
type ReceiptFilterRequest struct {
	Search  string `form:"search"`
	QuoteID string `form:"quote_id" binding:"omitempty,uuid"`
	Page    string `form:"page"`
	PerPage string `form:"per_page"`
}
