package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingQuotes fails every insert with err after counting the attempt.
type failingQuotes struct {
	repository.QuoteRepository
	err   error
	calls int
}

func (f *failingQuotes) Create(context.Context, *entity.Quote) error {
	f.calls++
	return f.err
}

func TestCreateQuote_SerialNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		q, err := f.quotes.CreateQuote(ctx, quoteInput(1000))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("COT-2026-%04d", i), q.QuoteNumber)
		assert.Equal(t, enum.QuoteStatusDraft, q.Status)
	}
}

func TestCreateQuote_ConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	f := newFixture(t)
	const workers = 20

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]bool{}
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := f.quotes.CreateQuote(context.Background(), quoteInput(1000))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[q.QuoteNumber] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, numbers, workers)
	for i := 1; i <= workers; i++ {
		assert.True(t, numbers[fmt.Sprintf("COT-2026-%04d", i)], "missing COT-2026-%04d", i)
	}
}

func TestCreateQuote_YearRollover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.Set(time.Date(2026, 12, 31, 20, 0, 0, 0, costaRica))
	q, err := f.quotes.CreateQuote(ctx, quoteInput(1000))
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0001", q.QuoteNumber)

	// Already 2027 in UTC, still 2026 locally.
	f.clock.Set(time.Date(2027, 1, 1, 3, 0, 0, 0, time.UTC))
	q, err = f.quotes.CreateQuote(ctx, quoteInput(1000))
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0002", q.QuoteNumber)

	f.clock.Set(time.Date(2027, 1, 1, 8, 0, 0, 0, costaRica))
	q, err = f.quotes.CreateQuote(ctx, quoteInput(1000))
	require.NoError(t, err)
	assert.Equal(t, "COT-2027-0001", q.QuoteNumber)
}

func TestCreateQuote_ContinuesAfterExistingNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Create(&entity.Quote{
		QuoteNumber: "COT-2026-0007",
		ClientName:  "Importada",
		Status:      enum.QuoteStatusAccepted,
	}).Error)

	q, err := f.quotes.CreateQuote(ctx, quoteInput(1000))
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0008", q.QuoteNumber)

	// A number typed in behind the counter's back is skipped, not reused.
	require.NoError(t, f.db.Create(&entity.Quote{
		QuoteNumber: "COT-2026-0009",
		ClientName:  "Manual",
		Status:      enum.QuoteStatusDraft,
	}).Error)

	q, err = f.quotes.CreateQuote(ctx, quoteInput(1000))
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0010", q.QuoteNumber)
}

func TestCreateQuote_FailedInsertDoesNotConsumeNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broken := &failingQuotes{QuoteRepository: f.quoteRepo, err: errors.New("disk full")}
	svc := NewQuoteService(f.tx, broken, f.receipts, f.sequences, f.calendar, 15, zap.NewNop())

	_, err := svc.CreateQuote(ctx, quoteInput(1000))
	require.EqualError(t, err, "disk full")
	assert.Equal(t, 1, broken.calls)

	q, err := f.quotes.CreateQuote(ctx, quoteInput(1000))
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0001", q.QuoteNumber)
}

func TestCreateQuote_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newFixture(t)

	broken := &failingQuotes{QuoteRepository: f.quoteRepo, err: fmt.Errorf("%w: quote_number", repository.ErrDuplicate)}
	svc := NewQuoteService(f.tx, broken, f.receipts, f.sequences, f.calendar, 15, zap.NewNop())

	_, err := svc.CreateQuote(context.Background(), quoteInput(1000))
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, maxNumberAttempts, broken.calls)

	current, err := f.sequences.Current(context.Background(), enum.DocumentKindQuote, 2026)
	require.NoError(t, err)
	assert.Zero(t, current)
}

func TestCreateQuote_ComputesTotals(t *testing.T) {
	f := newFixture(t)

	in := quoteInput(0)
	in.Items = []QuoteItemInput{
		{Description: "Tablero", Quantity: decimal.RequireFromString("2.5"), UnitPrice: money(10000)},
		{Description: "Instalación", Quantity: money(1), UnitPrice: money(15000)},
	}
	in.Tax = money(5000)
	in.Discount = money(2000)

	q, err := f.quotes.CreateQuote(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.True(t, money(25000).Equal(q.Items[0].Total))
	assert.True(t, money(40000).Equal(q.Subtotal))
	assert.True(t, money(43000).Equal(q.Total))
}

func TestCreateQuote_Validation(t *testing.T) {
	f := newFixture(t)

	in := quoteInput(1000)
	in.ClientName = "  "
	_, err := f.quotes.CreateQuote(context.Background(), in)
	requireAppError(t, err, http.StatusUnprocessableEntity)

	in = quoteInput(1000)
	in.Discount = money(5000)
	_, err = f.quotes.CreateQuote(context.Background(), in)
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "discount", appErr.Errors[0].Field)
}

func TestCreateQuote_RejectsSubCentMoney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	subCent := decimal.RequireFromString("0.005")

	cases := []struct {
		name  string
		field string
		edit  func(in *QuoteInput)
	}{
		{"tax", "tax", func(in *QuoteInput) { in.Tax = subCent }},
		{"discount", "discount", func(in *QuoteInput) { in.Discount = subCent }},
		{"unit price", "items", func(in *QuoteInput) { in.Items[0].UnitPrice = decimal.RequireFromString("10.005") }},
		{"quantity", "items", func(in *QuoteInput) { in.Items[0].Quantity = decimal.RequireFromString("1.005") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := quoteInput(1000)
			tc.edit(in)
			_, err := f.quotes.CreateQuote(ctx, in)
			appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
			assert.Equal(t, tc.field, appErr.Errors[0].Field)
		})
	}

	in := quoteInput(1000)
	in.Tax = decimal.RequireFromString("130.25")
	q, err := f.quotes.CreateQuote(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0001", q.QuoteNumber)
	assert.True(t, q.Subtotal.Add(q.Tax).Sub(q.Discount).Equal(q.Total))
}

func TestUpdateQuote_TotalMayNotDropBelowPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.createQuote(t, 100000)
	f.pay(t, id, 60000, f.calendar.Today())

	_, err := f.quotes.UpdateQuote(ctx, id, quoteInput(50000))
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "total", appErr.Errors[0].Field)

	in := quoteInput(80000)
	in.ProjectName = "Cocina y desayunador"
	q, err := f.quotes.UpdateQuote(ctx, id, in)
	require.NoError(t, err)
	assert.True(t, money(80000).Equal(q.Total))
	assert.Equal(t, "Cocina y desayunador", q.ProjectName)
	assert.Equal(t, "COT-2026-0001", q.QuoteNumber)
	require.Len(t, q.Items, 1)
}

func TestChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createQuote(t, 1000)

	q, err := f.quotes.ChangeStatus(ctx, id, enum.QuoteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusAccepted, q.Status)

	_, err = f.quotes.ChangeStatus(ctx, id, enum.QuoteStatus("paid"))
	requireAppError(t, err, http.StatusUnprocessableEntity)

	q, err = f.quotes.ChangeStatus(ctx, id, enum.QuoteStatusSent)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusSent, q.Status)
	require.NotNil(t, q.SentAt)
	require.NotNil(t, q.ValidUntil)
}

func TestMarkSent_KeepsExistingValidity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := quoteInput(1000)
	until := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	in.ValidUntil = &until
	q, err := f.quotes.CreateQuote(ctx, in)
	require.NoError(t, err)

	q, err = f.quotes.MarkSent(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, q.ValidUntil)
	assert.Equal(t, "2026-05-01", q.ValidUntil.Format("2006-01-02"))
}

func TestDeleteQuote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createQuote(t, 1000)
	f.pay(t, id, 500, f.calendar.Today())

	require.NoError(t, f.quotes.DeleteQuote(ctx, id))

	_, err := f.quotes.GetQuote(ctx, id)
	requireAppError(t, err, http.StatusNotFound)

	err = f.quotes.DeleteQuote(ctx, id)
	requireAppError(t, err, http.StatusNotFound)
}

func TestNotFoundMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.quotes.GetQuote(ctx, uuid.New())
	appErr := requireAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "Cotización no encontrada", appErr.Message)

	_, err = f.receiptSvc.GetReceipt(ctx, uuid.New())
	appErr = requireAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "Recibo no encontrado", appErr.Message)
}

func TestBalance_RunningBalanceIsChronological(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createQuote(t, 100000)

	later := f.pay(t, id, 30000, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	earlier := f.pay(t, id, 20000, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))

	b, err := f.quotes.Balance(ctx, id)
	require.NoError(t, err)
	assert.True(t, money(50000).Equal(b.Paid))
	assert.True(t, money(50000).Equal(b.Balance))
	require.Len(t, b.Receipts, 2)
	assert.Equal(t, earlier.ID, b.Receipts[0].Receipt.ID)
	assert.True(t, money(80000).Equal(b.Receipts[0].BalanceAfter))
	assert.True(t, money(50000).Equal(b.Receipts[1].BalanceAfter))

	again, err := f.quotes.Balance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, b.Balance.String(), again.Balance.String())

	got, err := f.receiptSvc.GetReceipt(ctx, later.ID)
	require.NoError(t, err)
	assert.True(t, money(50000).Equal(got.PaidToDate))
	assert.True(t, money(50000).Equal(got.BalanceAfter))
}

func TestListQuotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createQuote(t, 1000)
	in := quoteInput(2000)
	in.ClientName = "Carlos Jiménez"
	_, err := f.quotes.CreateQuote(ctx, in)
	require.NoError(t, err)

	res, err := f.quotes.ListQuotes(ctx, &QuoteListInput{Search: "carlos"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Carlos Jiménez", res.Items[0].ClientName)
	assert.Equal(t, int64(1), res.Pagination.Total)
}
