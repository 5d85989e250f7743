// Package ledger computes how much of a quote has been paid and what remains,
// given the receipts issued against it.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is the part of a receipt the ledger cares about.
type Payment struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	ReceiptDate time.Time
	CreatedAt   time.Time
}

// OverpaymentError reports an amount that would push the receipts past the quote total.
type OverpaymentError struct {
	Amount    decimal.Decimal
	Available decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("amount %s exceeds available balance %s", e.Amount.StringFixed(2), e.Available.StringFixed(2))
}

// Paid sums every payment.
func Paid(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// Balance is what the client still owes, never below zero.
func Balance(total decimal.Decimal, payments []Payment) decimal.Decimal {
	return clamp(total.Sub(Paid(payments)))
}

// Available is the largest amount a receipt may carry. exclude names the
// receipt being edited so its current amount is not counted; pass uuid.Nil
// when creating.
func Available(total decimal.Decimal, payments []Payment, exclude uuid.UUID) decimal.Decimal {
	others := decimal.Zero
	for _, p := range payments {
		if exclude != uuid.Nil && p.ID == exclude {
			continue
		}
		others = others.Add(p.Amount)
	}
	return clamp(total.Sub(others))
}

// CheckAmount rejects amounts above Available. Exactly the available amount is accepted.
func CheckAmount(total decimal.Decimal, payments []Payment, exclude uuid.UUID, amount decimal.Decimal) error {
	available := Available(total, payments, exclude)
	if amount.GreaterThan(available) {
		return &OverpaymentError{Amount: amount, Available: available}
	}
	return nil
}

// BalanceAfter is the running balance right after receiptID is applied, with
// payments ordered by receipt date, then creation time, then id. The second
// result is false when receiptID is not among payments.
func BalanceAfter(total decimal.Decimal, payments []Payment, receiptID uuid.UUID) (decimal.Decimal, bool) {
	ordered := Chronological(payments)
	running := total
	for _, p := range ordered {
		running = running.Sub(p.Amount)
		if p.ID == receiptID {
			return clamp(running), true
		}
	}
	return decimal.Zero, false
}

// PaidThrough sums the payments up to and including receiptID in chronological order.
func PaidThrough(payments []Payment, receiptID uuid.UUID) (decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, p := range Chronological(payments) {
		sum = sum.Add(p.Amount)
		if p.ID == receiptID {
			return sum, true
		}
	}
	return decimal.Zero, false
}

// Chronological returns a sorted copy of payments.
func Chronological(payments []Payment) []Payment {
	ordered := make([]Payment, len(payments))
	copy(ordered, payments)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.ReceiptDate.Equal(b.ReceiptDate) {
			return a.ReceiptDate.Before(b.ReceiptDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return ordered
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
