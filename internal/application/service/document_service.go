package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/sangkips/remodela-api/pkg/email"
	"github.com/sangkips/remodela-api/pkg/locale"
	"github.com/sangkips/remodela-api/pkg/pdf"
	"github.com/sangkips/remodela-api/pkg/whatsapp"
	"go.uber.org/zap"
)

// DocumentService turns quotes and receipts into PDFs, emails and WhatsApp links.
type DocumentService struct {
	quotes   *QuoteService
	receipts *ReceiptService
	composer *pdf.Composer
	sender   email.Sender
	company  pdf.Company
	log      *zap.Logger
}

func NewDocumentService(
	quotes *QuoteService,
	receipts *ReceiptService,
	composer *pdf.Composer,
	sender email.Sender,
	company pdf.Company,
	log *zap.Logger,
) *DocumentService {
	return &DocumentService{
		quotes:   quotes,
		receipts: receipts,
		composer: composer,
		sender:   sender,
		company:  company,
		log:      log.Named("documents"),
	}
}

// Document is a rendered file ready to download or attach.
type Document struct {
	Filename string
	Content  []byte
}

// WhatsAppLink is a click-to-chat URL with the message it carries.
type WhatsAppLink struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *DocumentService) QuotePDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	quote, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderQuote(ctx, quote)
}

func (s *DocumentService) ReceiptPDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderReceipt(ctx, receipt)
}

// EmailQuote sends the quote PDF to the client. Only after the provider
// accepts the message is the quote marked sent.
func (s *DocumentService) EmailQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.ClientEmail == "" {
		return nil, apperror.NewFieldError("client_email", "La cotización no tiene correo del cliente")
	}

	doc, err := s.renderQuote(ctx, quote)
	if err != nil {
		return nil, err
	}

	rows := []email.Row{
		{Label: "Proyecto", Value: quote.ProjectName},
		{Label: "Total", Value: locale.CRC(quote.Total)},
	}
	if quote.ValidUntil != nil {
		rows = append(rows, email.Row{Label: "Válida hasta", Value: locale.Date(*quote.ValidUntil)})
	}
	html, err := email.RenderDocument(email.DocumentEmail{
		CompanyName:  s.company.Name,
		CompanyPhone: s.company.Phone,
		CompanyEmail: s.company.Email,
		ClientName:   quote.ClientName,
		Title:        "Cotización",
		Number:       quote.QuoteNumber,
		Intro:        "Adjuntamos la cotización solicitada. Quedamos atentos a cualquier consulta.",
		Rows:         rows,
		Closing:      "Gracias por confiar en nosotros.",
	})
	if err != nil {
		return nil, err
	}

	if err := s.send(ctx, quote.ClientEmail, fmt.Sprintf("Cotización %s - %s", quote.QuoteNumber, s.company.Name), html, doc); err != nil {
		return nil, err
	}

	s.log.Info("quote emailed", zap.String("quote_number", quote.QuoteNumber))
	return s.quotes.MarkSent(ctx, id)
}

// EmailReceipt sends the receipt PDF to the client and records sent_at.
func (s *DocumentService) EmailReceipt(ctx context.Context, id uuid.UUID) (*ReceiptDetail, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.ClientEmail == "" {
		return nil, apperror.NewFieldError("client_email", "El recibo no tiene correo del cliente")
	}

	doc, err := s.renderReceipt(ctx, receipt)
	if err != nil {
		return nil, err
	}

	html, err := email.RenderDocument(email.DocumentEmail{
		CompanyName:  s.company.Name,
		CompanyPhone: s.company.Phone,
		CompanyEmail: s.company.Email,
		ClientName:   receipt.ClientName,
		Title:        "Recibo de pago",
		Number:       receipt.ReceiptNumber,
		Intro:        "Confirmamos el recibo de su pago. Adjuntamos el comprobante.",
		Rows: []email.Row{
			{Label: "Cotización", Value: receipt.Quote.QuoteNumber},
			{Label: "Monto", Value: locale.CRC(receipt.Amount)},
			{Label: "Forma de pago", Value: receipt.PaymentMethod.Label()},
			{Label: "Saldo pendiente", Value: locale.CRC(receipt.BalanceAfter)},
		},
		Closing: "Gracias por su pago.",
	})
	if err != nil {
		return nil, err
	}

	if err := s.send(ctx, receipt.ClientEmail, fmt.Sprintf("Recibo %s - %s", receipt.ReceiptNumber, s.company.Name), html, doc); err != nil {
		return nil, err
	}

	s.log.Info("receipt emailed", zap.String("receipt_number", receipt.ReceiptNumber))
	return s.receipts.MarkSent(ctx, id)
}

// QuoteWhatsApp builds the share link for a quote. It does not mark the quote sent.
func (s *DocumentService) QuoteWhatsApp(ctx context.Context, id uuid.UUID) (*WhatsAppLink, error) {
	quote, err := s.quotes.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Hola %s, le saluda %s. Le compartimos la cotización %s por un total de %s.",
		quote.ClientName, s.company.Name, quote.QuoteNumber, locale.CRC(quote.Total))
	if quote.ValidUntil != nil {
		msg += " Válida hasta el " + locale.LongDate(*quote.ValidUntil) + "."
	}
	return whatsAppLink(quote.ClientPhone, msg)
}

func (s *DocumentService) ReceiptWhatsApp(ctx context.Context, id uuid.UUID) (*WhatsAppLink, error) {
	receipt, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Hola %s, confirmamos su pago de %s (recibo %s) para la cotización %s. Saldo pendiente: %s.",
		receipt.ClientName, locale.CRC(receipt.Amount), receipt.ReceiptNumber,
		receipt.Quote.QuoteNumber, locale.CRC(receipt.BalanceAfter))
	return whatsAppLink(receipt.Quote.ClientPhone, msg)
}

func (s *DocumentService) renderQuote(ctx context.Context, quote *entity.Quote) (*Document, error) {
	lines := make([]pdf.Line, len(quote.Items))
	for i, item := range quote.Items {
		lines[i] = pdf.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}

	content, err := s.composer.Quote(ctx, pdf.QuoteDocument{
		Number:             quote.QuoteNumber,
		IssuedAt:           quote.CreatedAt,
		ValidUntil:         quote.ValidUntil,
		Status:             quote.Status.Label(),
		ClientName:         quote.ClientName,
		ClientEmail:        quote.ClientEmail,
		ClientPhone:        quote.ClientPhone,
		ClientAddress:      quote.ClientAddress,
		ProjectName:        quote.ProjectName,
		ProjectDescription: quote.ProjectDescription,
		Items:              lines,
		Subtotal:           quote.Subtotal,
		Tax:                quote.Tax,
		Discount:           quote.Discount,
		Total:              quote.Total,
		Notes:              quote.Notes,
		Images:             quote.Images,
	})
	if err != nil {
		return nil, fmt.Errorf("render quote %s: %w", quote.QuoteNumber, err)
	}
	return &Document{Filename: quote.QuoteNumber + ".pdf", Content: content}, nil
}

func (s *DocumentService) renderReceipt(ctx context.Context, receipt *ReceiptDetail) (*Document, error) {
	content, err := s.composer.Receipt(ctx, pdf.ReceiptDocument{
		Number:        receipt.ReceiptNumber,
		ReceiptDate:   receipt.ReceiptDate,
		QuoteNumber:   receipt.Quote.QuoteNumber,
		ClientName:    receipt.ClientName,
		ClientEmail:   receipt.ClientEmail,
		Amount:        receipt.Amount,
		PaymentMethod: receipt.PaymentMethod.Label(),
		Concept:       receipt.Concept,
		Notes:         receipt.Notes,
		QuoteTotal:    receipt.QuoteTotal,
		PaidToDate:    receipt.PaidToDate,
		Balance:       receipt.BalanceAfter,
	})
	if err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", receipt.ReceiptNumber, err)
	}
	return &Document{Filename: receipt.ReceiptNumber + ".pdf", Content: content}, nil
}

// send maps provider failures onto API errors carrying the provider's message.
func (s *DocumentService) send(ctx context.Context, to, subject, html string, doc *Document) error {
	id, err := s.sender.Send(ctx, email.Message{
		To:          []string{to},
		Subject:     subject,
		HTML:        html,
		Attachments: []email.Attachment{{Filename: doc.Filename, Content: doc.Content}},
	})
	if errors.Is(err, email.ErrNotConfigured) {
		return apperror.NewAppError(apperror.ErrServiceUnavailable.Code, "El envío de correos no está configurado")
	}
	if err != nil {
		s.log.Warn("email delivery failed", zap.String("to", to), zap.Error(err))
		return apperror.NewUpstreamError("No se pudo enviar el correo: " + err.Error())
	}
	s.log.Debug("email accepted", zap.String("message_id", id))
	return nil
}

func whatsAppLink(phone, msg string) (*WhatsAppLink, error) {
	url, err := whatsapp.Link(phone, msg)
	if err != nil {
		return nil, apperror.NewFieldError("client_phone", "El teléfono del cliente no es un número válido de Costa Rica")
	}
	local, _ := whatsapp.NormalizePhone(phone)
	return &WhatsAppLink{URL: url, Phone: local, Message: msg}, nil
}
