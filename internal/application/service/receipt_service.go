package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/domain/ledger"
	"github.com/sangkips/remodela-api/internal/domain/numbering"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/sangkips/remodela-api/pkg/locale"
	"github.com/sangkips/remodela-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptService handles payment receipts issued against quotes
type ReceiptService struct {
	tx        repository.Transactor
	quotes    repository.QuoteRepository
	receipts  repository.ReceiptRepository
	sequences repository.SequenceRepository
	calendar  *Calendar
	log       *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	tx repository.Transactor,
	quotes repository.QuoteRepository,
	receipts repository.ReceiptRepository,
	sequences repository.SequenceRepository,
	calendar *Calendar,
	log *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		tx:        tx,
		quotes:    quotes,
		receipts:  receipts,
		sequences: sequences,
		calendar:  calendar,
		log:       log.Named("receipts"),
	}
}

// ReceiptInput carries the editable fields of a receipt. QuoteID is only read on create.
type ReceiptInput struct {
	QuoteID       uuid.UUID
	Amount        decimal.Decimal
	PaymentMethod enum.PaymentMethod
	ReceiptDate   *time.Time
	Concept       string
	Notes         string
}

// ReceiptListInput represents the input for listing receipts
type ReceiptListInput struct {
	Pagination *pagination.PaginationParams
	QuoteID    *uuid.UUID
	Search     string
}

// ReceiptDetail is a receipt with the balance figures printed on it
type ReceiptDetail struct {
	*entity.Receipt
	QuoteTotal   decimal.Decimal `json:"quote_total"`
	PaidToDate   decimal.Decimal `json:"paid_to_date"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Balance      decimal.Decimal `json:"balance"`
}

// CreateReceipt numbers and stores a payment. The quote row stays locked from
// the balance check until the insert commits.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *ReceiptInput) (*ReceiptDetail, error) {
	if err := validateReceiptInput(input); err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		QuoteID:       input.QuoteID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		ReceiptDate:   s.receiptDate(input.ReceiptDate),
		Concept:       strings.TrimSpace(input.Concept),
		Notes:         input.Notes,
	}

	year := s.calendar.Year()
	err := withNumberRetry(ctx, s.log, enum.DocumentKindReceipt, func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			quote, err := s.lockQuote(txCtx, input.QuoteID)
			if err != nil {
				return err
			}
			if err := s.checkAmount(txCtx, quote, uuid.Nil, input.Amount); err != nil {
				return err
			}

			seq, err := s.sequences.Next(txCtx, enum.DocumentKindReceipt, year)
			if err != nil {
				return err
			}
			receipt.ReceiptNumber = numbering.Format(enum.DocumentKindReceipt.Prefix(), year, seq)
			receipt.ClientName = quote.ClientName
			receipt.ClientEmail = quote.ClientEmail
			return s.receipts.Create(txCtx, receipt)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("receipt created",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("quote_id", receipt.QuoteID.String()),
		zap.String("amount", receipt.Amount.StringFixed(2)))
	return s.GetReceipt(ctx, receipt.ID)
}

// UpdateReceipt edits a receipt in place. Its own current amount is not
// counted against the quote when checking the new one.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, input *ReceiptInput) (*ReceiptDetail, error) {
	if err := validateReceiptInput(input); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		receipt, err := s.receipts.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewNotFoundError("Recibo no encontrado")
		}

		quote, err := s.lockQuote(txCtx, receipt.QuoteID)
		if err != nil {
			return err
		}
		if err := s.checkAmount(txCtx, quote, receipt.ID, input.Amount); err != nil {
			return err
		}

		receipt.Amount = input.Amount
		receipt.PaymentMethod = input.PaymentMethod
		if input.ReceiptDate != nil {
			receipt.ReceiptDate = DateOnly(*input.ReceiptDate)
		}
		receipt.Concept = strings.TrimSpace(input.Concept)
		receipt.Notes = input.Notes
		return s.receipts.Update(txCtx, receipt)
	})
	if err != nil {
		return nil, err
	}

	return s.GetReceipt(ctx, id)
}

// GetReceipt loads a receipt with its quote and balance figures
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*ReceiptDetail, error) {
	receipt, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil || receipt.Quote == nil {
		return nil, apperror.NewNotFoundError("Recibo no encontrado")
	}

	receipts, err := s.receipts.ListByQuote(ctx, receipt.QuoteID)
	if err != nil {
		return nil, err
	}
	return detail(receipt, entity.Payments(receipts)), nil
}

// ListReceipts retrieves receipts with pagination
func (s *ReceiptService) ListReceipts(ctx context.Context, input *ReceiptListInput) (*pagination.PaginatedResult[entity.Receipt], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	receipts, total, err := s.receipts.List(ctx, &repository.ReceiptFilterParams{
		Pagination: input.Pagination,
		QuoteID:    input.QuoteID,
		Search:     input.Search,
	})
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(receipts,
		pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)), nil
}

// MarkSent records that the receipt was delivered to the client
func (s *ReceiptService) MarkSent(ctx context.Context, id uuid.UUID) (*ReceiptDetail, error) {
	if err := s.receipts.MarkSent(ctx, id, s.calendar.Now()); err != nil {
		return nil, err
	}
	return s.GetReceipt(ctx, id)
}

// DeleteReceipt removes a receipt; the quote balance grows back by its amount
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	receipt, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Recibo no encontrado")
	}

	if err := s.receipts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("receipt deleted", zap.String("receipt_number", receipt.ReceiptNumber))
	return nil
}

func (s *ReceiptService) lockQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quotes.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Cotización no encontrada")
	}
	return quote, nil
}

func (s *ReceiptService) checkAmount(ctx context.Context, quote *entity.Quote, exclude uuid.UUID, amount decimal.Decimal) error {
	receipts, err := s.receipts.ListByQuote(ctx, quote.ID)
	if err != nil {
		return err
	}

	err = ledger.CheckAmount(quote.Total, entity.Payments(receipts), exclude, amount)
	var over *ledger.OverpaymentError
	if errors.As(err, &over) {
		return apperror.NewFieldError("amount",
			"El monto excede el saldo de la cotización. Máximo permitido: "+locale.CRC(over.Available))
	}
	return err
}

func (s *ReceiptService) receiptDate(in *time.Time) time.Time {
	if in == nil {
		return s.calendar.Today()
	}
	return DateOnly(*in)
}

func validateReceiptInput(input *ReceiptInput) error {
	if !input.Amount.IsPositive() {
		return apperror.NewFieldError("amount", "El monto debe ser mayor a cero")
	}
	if !centPrecision(input.Amount) {
		return apperror.NewFieldError("amount", "El monto admite como máximo dos decimales")
	}
	if !input.PaymentMethod.IsValid() {
		return apperror.NewFieldError("payment_method", "Forma de pago inválida")
	}
	if strings.TrimSpace(input.Concept) == "" {
		return apperror.NewFieldError("concept", "El concepto es requerido")
	}
	return nil
}

func detail(receipt *entity.Receipt, payments []ledger.Payment) *ReceiptDetail {
	total := receipt.Quote.Total
	after, _ := ledger.BalanceAfter(total, payments, receipt.ID)
	paid, _ := ledger.PaidThrough(payments, receipt.ID)
	return &ReceiptDetail{
		Receipt:      receipt,
		QuoteTotal:   total,
		PaidToDate:   paid,
		BalanceAfter: after,
		Balance:      ledger.Balance(total, payments),
	}
}
