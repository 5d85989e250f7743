package service

import (
	"context"
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

// QuoteService handles quote-related operations
type QuoteService struct {
	tx           repository.Transactor
	quotes       repository.QuoteRepository
	receipts     repository.ReceiptRepository
	sequences    repository.SequenceRepository
	calendar     *Calendar
	validityDays int
	log          *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	tx repository.Transactor,
	quotes repository.QuoteRepository,
	receipts repository.ReceiptRepository,
	sequences repository.SequenceRepository,
	calendar *Calendar,
	validityDays int,
	log *zap.Logger,
) *QuoteService {
	if validityDays <= 0 {
		validityDays = 15
	}
	return &QuoteService{
		tx:           tx,
		quotes:       quotes,
		receipts:     receipts,
		sequences:    sequences,
		calendar:     calendar,
		validityDays: validityDays,
		log:          log.Named("quotes"),
	}
}

// QuoteItemInput is one line of work as entered by the admin
type QuoteItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// QuoteInput carries the editable fields of a quote
type QuoteInput struct {
	ClientName         string
	ClientEmail        string
	ClientPhone        string
	ClientAddress      string
	ProjectName        string
	ProjectDescription string
	ValidUntil         *time.Time
	Tax                decimal.Decimal
	Discount           decimal.Decimal
	Notes              string
	Images             []string
	Items              []QuoteItemInput
}

// QuoteListInput represents the input for listing quotes
type QuoteListInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	SortBy     string
	SortOrder  string
}

// ReceiptBalance pairs a receipt with the balance left after it
type ReceiptBalance struct {
	Receipt      entity.Receipt  `json:"receipt"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// QuoteBalance summarizes payments against a quote
type QuoteBalance struct {
	QuoteID     uuid.UUID        `json:"quote_id"`
	QuoteNumber string           `json:"quote_number"`
	Total       decimal.Decimal  `json:"total"`
	Paid        decimal.Decimal  `json:"paid"`
	Balance     decimal.Decimal  `json:"balance"`
	Receipts    []ReceiptBalance `json:"receipts"`
}

// CreateQuote numbers and stores a new draft quote.
func (s *QuoteService) CreateQuote(ctx context.Context, input *QuoteInput) (*entity.Quote, error) {
	quote := &entity.Quote{Status: enum.QuoteStatusDraft}
	if err := applyQuoteInput(quote, input); err != nil {
		return nil, err
	}

	year := s.calendar.Year()
	err := withNumberRetry(ctx, s.log, enum.DocumentKindQuote, func(ctx context.Context) error {
		return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			seq, err := s.sequences.Next(txCtx, enum.DocumentKindQuote, year)
			if err != nil {
				return err
			}
			quote.QuoteNumber = numbering.Format(enum.DocumentKindQuote.Prefix(), year, seq)
			return s.quotes.Create(txCtx, quote)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("quote created",
		zap.String("quote_number", quote.QuoteNumber),
		zap.String("total", quote.Total.StringFixed(2)))
	return s.quotes.GetWithItems(ctx, quote.ID)
}

// GetQuote retrieves a quote with its items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quotes.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Cotización no encontrada")
	}
	return quote, nil
}

// ListQuotes retrieves quotes with pagination
func (s *QuoteService) ListQuotes(ctx context.Context, input *QuoteListInput) (*pagination.PaginatedResult[entity.Quote], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	quotes, total, err := s.quotes.List(ctx, &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(quotes,
		pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)), nil
}

// UpdateQuote rewrites the quote and replaces its items. The new total may
// not fall below what the client has already paid.
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input *QuoteInput) (*entity.Quote, error) {
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		quote, err := s.quotes.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if quote == nil {
			return apperror.NewNotFoundError("Cotización no encontrada")
		}

		if err := applyQuoteInput(quote, input); err != nil {
			return err
		}

		receipts, err := s.receipts.ListByQuote(txCtx, id)
		if err != nil {
			return err
		}
		if paid := ledger.Paid(entity.Payments(receipts)); quote.Total.LessThan(paid) {
			return apperror.NewFieldError("total",
				"El total no puede ser menor a lo ya abonado ("+locale.CRC(paid)+")")
		}

		if err := s.quotes.Update(txCtx, quote); err != nil {
			return err
		}
		return s.quotes.ReplaceItems(txCtx, id, quote.Items)
	})
	if err != nil {
		return nil, err
	}

	return s.quotes.GetWithItems(ctx, id)
}

// ChangeStatus sets the status chosen by the admin. Moving to sent records
// the send exactly like MarkSent.
func (s *QuoteService) ChangeStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) (*entity.Quote, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "Estado inválido")
	}
	if status == enum.QuoteStatusSent {
		return s.MarkSent(ctx, id)
	}

	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.quotes.UpdateStatus(ctx, quote.ID, status); err != nil {
		return nil, err
	}
	quote.Status = status
	return quote, nil
}

// MarkSent records that the quote reached the client: sent_at is now, status
// becomes sent and a missing validity date is set to today plus the validity window.
func (s *QuoteService) MarkSent(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.calendar.Now()
	var validUntil *time.Time
	if quote.ValidUntil == nil {
		v := s.calendar.Today().AddDate(0, 0, s.validityDays)
		validUntil = &v
	}
	if err := s.quotes.MarkSent(ctx, id, now, validUntil); err != nil {
		return nil, err
	}

	return s.GetQuote(ctx, id)
}

// DeleteQuote removes the quote with its items and receipts
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Cotización no encontrada")
	}

	if err := s.quotes.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("quote deleted", zap.String("quote_number", quote.QuoteNumber))
	return nil
}

// Balance reports paid and pending amounts, with the running balance after each receipt.
func (s *QuoteService) Balance(ctx context.Context, id uuid.UUID) (*QuoteBalance, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Cotización no encontrada")
	}

	receipts, err := s.receipts.ListByQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	payments := entity.Payments(receipts)

	out := &QuoteBalance{
		QuoteID:     quote.ID,
		QuoteNumber: quote.QuoteNumber,
		Total:       quote.Total,
		Paid:        ledger.Paid(payments),
		Balance:     ledger.Balance(quote.Total, payments),
		Receipts:    make([]ReceiptBalance, 0, len(receipts)),
	}
	for _, r := range receipts {
		after, _ := ledger.BalanceAfter(quote.Total, payments, r.ID)
		out.Receipts = append(out.Receipts, ReceiptBalance{Receipt: r, BalanceAfter: after})
	}
	return out, nil
}

// applyQuoteInput validates input and copies it onto quote, recomputing every total.
func applyQuoteInput(quote *entity.Quote, input *QuoteInput) error {
	name := strings.TrimSpace(input.ClientName)
	if name == "" {
		return apperror.NewFieldError("client_name", "El nombre del cliente es requerido")
	}
	if input.Tax.IsNegative() {
		return apperror.NewFieldError("tax", "El impuesto no puede ser negativo")
	}
	if input.Discount.IsNegative() {
		return apperror.NewFieldError("discount", "El descuento no puede ser negativo")
	}
	if !centPrecision(input.Tax) {
		return apperror.NewFieldError("tax", "El impuesto admite como máximo dos decimales")
	}
	if !centPrecision(input.Discount) {
		return apperror.NewFieldError("discount", "El descuento admite como máximo dos decimales")
	}

	items := make([]entity.QuoteItem, 0, len(input.Items))
	subtotal := decimal.Zero
	for i, in := range input.Items {
		if strings.TrimSpace(in.Description) == "" {
			return apperror.NewFieldError("items", "Cada línea requiere una descripción")
		}
		if in.Quantity.IsNegative() || in.UnitPrice.IsNegative() {
			return apperror.NewFieldError("items", "Cantidad y precio no pueden ser negativos")
		}
		if !centPrecision(in.Quantity) || !centPrecision(in.UnitPrice) {
			return apperror.NewFieldError("items", "Cantidad y precio admiten como máximo dos decimales")
		}
		lineTotal := in.Quantity.Mul(in.UnitPrice).Round(2)
		subtotal = subtotal.Add(lineTotal)
		items = append(items, entity.QuoteItem{
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Total:       lineTotal,
			Position:    i,
		})
	}

	total := subtotal.Add(input.Tax).Sub(input.Discount)
	if total.IsNegative() {
		return apperror.NewFieldError("discount", "El descuento no puede superar el subtotal más impuestos")
	}

	var validUntil *time.Time
	if input.ValidUntil != nil {
		v := DateOnly(*input.ValidUntil)
		validUntil = &v
	}

	quote.ClientName = name
	quote.ClientEmail = strings.TrimSpace(input.ClientEmail)
	quote.ClientPhone = strings.TrimSpace(input.ClientPhone)
	quote.ClientAddress = input.ClientAddress
	quote.ProjectName = input.ProjectName
	quote.ProjectDescription = input.ProjectDescription
	quote.ValidUntil = validUntil
	quote.Notes = input.Notes
	quote.Images = append([]string{}, input.Images...)
	quote.Items = items
	quote.Subtotal = subtotal
	quote.Tax = input.Tax
	quote.Discount = input.Discount
	quote.Total = total
	return nil
}

// centPrecision reports whether d fits the two decimal places every money column stores.
func centPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
