package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/remodela-api/internal/infrastructure/repository"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/sangkips/remodela-api/pkg/email"
	"github.com/sangkips/remodela-api/pkg/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var costaRica = time.FixedZone("CST", -6*60*60)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(t time.Time) { c.now = t }

type fakeSender struct {
	err  error
	sent []email.Message
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-1", nil
}

type noImages struct{}

func (noImages) Fetch(context.Context, string) ([]byte, string, error) {
	return nil, "", errors.New("offline")
}

var testCompany = pdf.Company{
	Name:    "Muebles La Sabana",
	LegalID: "3-101-123456",
	Phone:   "2222-3333",
	Email:   "ventas@lasabana.cr",
}

type fixture struct {
	db        *gorm.DB
	clock     *testClock
	calendar  *Calendar
	tx        repository.Transactor
	quoteRepo repository.QuoteRepository
	receipts  repository.ReceiptRepository
	sequences repository.SequenceRepository
	sender    *fakeSender

	quotes     *QuoteService
	receiptSvc *ReceiptService
	docs       *DocumentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "service.db"), zap.NewNop(), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:        db,
		clock:     &testClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, costaRica)},
		tx:        infraRepo.NewTransactor(db),
		quoteRepo: infraRepo.NewQuoteRepository(db),
		receipts:  infraRepo.NewReceiptRepository(db),
		sequences: infraRepo.NewSequenceRepository(db),
		sender:    &fakeSender{},
	}
	f.calendar = NewCalendar(costaRica, f.clock.Now)

	log := zap.NewNop()
	f.quotes = NewQuoteService(f.tx, f.quoteRepo, f.receipts, f.sequences, f.calendar, 15, log)
	f.receiptSvc = NewReceiptService(f.tx, f.quoteRepo, f.receipts, f.sequences, f.calendar, log)
	f.docs = NewDocumentService(f.quotes, f.receiptSvc, pdf.NewComposer(testCompany, noImages{}, log), f.sender, testCompany, log)
	return f
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func quoteInput(total int64) *QuoteInput {
	return &QuoteInput{
		ClientName:  "Ana Mora",
		ClientEmail: "ana@example.com",
		ClientPhone: "8888-7777",
		ProjectName: "Cocina integral",
		Items: []QuoteItemInput{
			{Description: "Muebles de cocina", Quantity: money(1), UnitPrice: money(total)},
		},
	}
}

func (f *fixture) createQuote(t *testing.T, total int64) uuid.UUID {
	t.Helper()
	q, err := f.quotes.CreateQuote(context.Background(), quoteInput(total))
	require.NoError(t, err)
	return q.ID
}

func (f *fixture) pay(t *testing.T, quoteID uuid.UUID, amount int64, day time.Time) *ReceiptDetail {
	t.Helper()
	r, err := f.receiptSvc.CreateReceipt(context.Background(), &ReceiptInput{
		QuoteID:       quoteID,
		Amount:        money(amount),
		PaymentMethod: enum.PaymentMethodSinpe,
		ReceiptDate:   &day,
		Concept:       "Abono",
	})
	require.NoError(t, err)
	return r
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestCalendar_UsesBusinessZone(t *testing.T) {
	cal := NewCalendar(costaRica, func() time.Time {
		return time.Date(2027, 1, 1, 3, 0, 0, 0, time.UTC)
	})
	assert.Equal(t, 2026, cal.Year())
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), cal.Today())
}
