package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/sangkips/remodela-api/pkg/locale"
	"github.com/sangkips/remodela-api/pkg/pdf"
	"github.com/sangkips/remodela-api/pkg/printer"
	"go.uber.org/zap"
)

// slipWidth is the character width of 58mm thermal paper.
const slipWidth = 32

// PrinterService prints payment slips on the counter's thermal printer.
type PrinterService struct {
	printer  printer.Printer
	receipts *ReceiptService
	company  pdf.Company
	log      *zap.Logger
}

func NewPrinterService(p printer.Printer, receipts *ReceiptService, company pdf.Company, log *zap.Logger) *PrinterService {
	return &PrinterService{
		printer:  p,
		receipts: receipts,
		company:  company,
		log:      log.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

func (s *PrinterService) Status(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != "none",
		Connected:  s.printer.Ready(ctx),
		Type:       s.printer.Kind(),
	}
}

// PrintReceipt sends the payment slip of a receipt to the printer and returns
// the slip so callers without a printer can still show it.
func (s *PrinterService) PrintReceipt(ctx context.Context, id uuid.UUID) (*printer.PaymentSlip, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	slip := &printer.PaymentSlip{
		StoreName:     s.company.Name,
		StorePhone:    s.company.Phone,
		StoreLegalID:  s.company.LegalID,
		Number:        receipt.ReceiptNumber,
		Date:          locale.Date(receipt.ReceiptDate),
		QuoteNumber:   receipt.Quote.QuoteNumber,
		ClientName:    receipt.ClientName,
		PaymentMethod: receipt.PaymentMethod.Label(),
		Concept:       receipt.Concept,
		Amount:        locale.Money(receipt.Amount, locale.PDFColonSign),
		QuoteTotal:    locale.Money(receipt.QuoteTotal, locale.PDFColonSign),
		Balance:       locale.Money(receipt.BalanceAfter, locale.PDFColonSign),
	}

	if err := s.printer.Print(ctx, printer.BuildPaymentSlip(*slip, slipWidth)); err != nil {
		s.log.Warn("print failed", zap.String("receipt_number", receipt.ReceiptNumber), zap.Error(err))
		return slip, apperror.NewUpstreamError(fmt.Sprintf("No se pudo imprimir el recibo: %v", err))
	}
	return slip, nil
}
