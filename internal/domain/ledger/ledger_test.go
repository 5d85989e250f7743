package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(d int) time.Time { return time.Date(2026, time.May, d, 0, 0, 0, 0, time.UTC) }

func TestBalance(t *testing.T) {
	t.Run("total minus payments", func(t *testing.T) {
		payments := []Payment{{ID: uuid.New(), Amount: dec(25000)}, {ID: uuid.New(), Amount: dec(15000)}}
		assert.True(t, dec(60000).Equal(Balance(dec(100000), payments)))
		assert.True(t, dec(40000).Equal(Paid(payments)))
	})

	t.Run("no payments", func(t *testing.T) {
		assert.True(t, dec(100000).Equal(Balance(dec(100000), nil)))
	})

	t.Run("over-summed receipts clamp to zero", func(t *testing.T) {
		payments := []Payment{{ID: uuid.New(), Amount: dec(80000)}, {ID: uuid.New(), Amount: dec(50000)}}
		assert.True(t, Balance(dec(100000), payments).IsZero())
	})
}

func TestCheckAmount(t *testing.T) {
	existing := []Payment{{ID: uuid.New(), Amount: dec(60000)}}

	t.Run("rejects amount above available and reports the maximum", func(t *testing.T) {
		err := CheckAmount(dec(100000), existing, uuid.Nil, dec(50000))
		var over *OverpaymentError
		require.True(t, errors.As(err, &over))
		assert.True(t, dec(40000).Equal(over.Available))
	})

	t.Run("accepts exactly the available amount", func(t *testing.T) {
		require.NoError(t, CheckAmount(dec(100000), existing, uuid.Nil, dec(40000)))
		after := append(existing, Payment{ID: uuid.New(), Amount: dec(40000)})
		assert.True(t, Balance(dec(100000), after).IsZero())
	})

	t.Run("editing excludes the receipt's own amount", func(t *testing.T) {
		id := uuid.New()
		payments := []Payment{{ID: id, Amount: dec(30000)}}
		require.NoError(t, CheckAmount(dec(100000), payments, id, dec(45000)))
		assert.True(t, dec(100000).Equal(Available(dec(100000), payments, id)))
	})

	t.Run("available never negative", func(t *testing.T) {
		payments := []Payment{{ID: uuid.New(), Amount: dec(120000)}}
		assert.True(t, Available(dec(100000), payments, uuid.Nil).IsZero())
	})
}

func TestBalanceAfter(t *testing.T) {
	first := Payment{ID: uuid.New(), Amount: dec(30000), ReceiptDate: day(1), CreatedAt: day(1)}
	second := Payment{ID: uuid.New(), Amount: dec(20000), ReceiptDate: day(3), CreatedAt: day(3)}
	backdated := Payment{ID: uuid.New(), Amount: dec(10000), ReceiptDate: day(2), CreatedAt: day(10)}
	payments := []Payment{second, backdated, first}

	t.Run("running balance in receipt date order", func(t *testing.T) {
		got, ok := BalanceAfter(dec(100000), payments, first.ID)
		require.True(t, ok)
		assert.True(t, dec(70000).Equal(got))

		got, _ = BalanceAfter(dec(100000), payments, backdated.ID)
		assert.True(t, dec(60000).Equal(got))

		got, _ = BalanceAfter(dec(100000), payments, second.ID)
		assert.True(t, dec(40000).Equal(got))
	})

	t.Run("paid through a receipt", func(t *testing.T) {
		got, ok := PaidThrough(payments, backdated.ID)
		require.True(t, ok)
		assert.True(t, dec(40000).Equal(got))
	})

	t.Run("recomputation is stable", func(t *testing.T) {
		a, _ := BalanceAfter(dec(100000), payments, backdated.ID)
		b, _ := BalanceAfter(dec(100000), payments, backdated.ID)
		assert.True(t, a.Equal(b))
	})

	t.Run("unknown receipt", func(t *testing.T) {
		_, ok := BalanceAfter(dec(100000), payments, uuid.New())
		assert.False(t, ok)
	})

	t.Run("clamped at zero", func(t *testing.T) {
		got, ok := BalanceAfter(dec(40000), payments, second.ID)
		require.True(t, ok)
		assert.True(t, got.IsZero())
	})

	t.Run("same date falls back to creation time", func(t *testing.T) {
		a := Payment{ID: uuid.New(), Amount: dec(1000), ReceiptDate: day(5), CreatedAt: day(6)}
		b := Payment{ID: uuid.New(), Amount: dec(2000), ReceiptDate: day(5), CreatedAt: day(5)}
		got, _ := BalanceAfter(dec(10000), []Payment{a, b}, b.ID)
		assert.True(t, dec(8000).Equal(got))
	})
}
