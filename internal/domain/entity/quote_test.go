package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuote_IsExpired(t *testing.T) {
	today := time.Date(2026, time.June, 10, 15, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	sameDay := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		quote  Quote
		expect bool
	}{
		{"sent and lapsed", Quote{Status: enum.QuoteStatusSent, ValidUntil: &yesterday}, true},
		{"valid through today", Quote{Status: enum.QuoteStatusSent, ValidUntil: &sameDay}, false},
		{"draft never expires", Quote{Status: enum.QuoteStatusDraft, ValidUntil: &yesterday}, false},
		{"no validity date", Quote{Status: enum.QuoteStatusSent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.quote.IsExpired(today))
		})
	}
}

func TestPayments(t *testing.T) {
	receipts := []Receipt{
		{ID: uuid.New(), Amount: decimal.NewFromInt(100)},
		{ID: uuid.New(), Amount: decimal.NewFromInt(250)},
	}
	payments := Payments(receipts)
	assert.Len(t, payments, 2)
	assert.Equal(t, receipts[1].ID, payments[1].ID)
	assert.True(t, decimal.NewFromInt(250).Equal(payments[1].Amount))
}
