// Package pdf lays out quotes and receipts as A4 documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sangkips/remodela-api/pkg/locale"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Company is the issuer block printed in the header.
type Company struct {
	Name    string
	LegalID string
	Phone   string
	Email   string
	Address string
	Website string
	LogoURL string
}

// Line is one priced row of a quote.
type Line struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// QuoteDocument is a fully resolved quote ready for layout.
type QuoteDocument struct {
	Number             string
	IssuedAt           time.Time
	ValidUntil         *time.Time
	Status             string
	ClientName         string
	ClientEmail        string
	ClientPhone        string
	ClientAddress      string
	ProjectName        string
	ProjectDescription string
	Items              []Line
	Subtotal           decimal.Decimal
	Tax                decimal.Decimal
	Discount           decimal.Decimal
	Total              decimal.Decimal
	Notes              string
	Images             []string
}

// ReceiptDocument is a receipt with the balance figures already computed.
type ReceiptDocument struct {
	Number        string
	ReceiptDate   time.Time
	QuoteNumber   string
	ClientName    string
	ClientEmail   string
	Amount        decimal.Decimal
	PaymentMethod string
	Concept       string
	Notes         string
	QuoteTotal    decimal.Decimal
	PaidToDate    decimal.Decimal
	Balance       decimal.Decimal
}

const (
	pageMargin   = 15.0
	bottomMargin = 20.0
	lineHeight   = 6.0
	fontFamily   = "Arial"
)

var (
	brandColor = [3]int{62, 47, 35}
	mutedColor = [3]int{120, 120, 120}
	lightFill  = [3]int{245, 241, 235}
)

// Composer renders documents to PDF bytes.
type Composer struct {
	company Company
	images  ImageFetcher
	log     *zap.Logger
}

func NewComposer(company Company, images ImageFetcher, log *zap.Logger) *Composer {
	return &Composer{company: company, images: images, log: log.Named("pdf")}
}

// Quote renders a quote. Images that cannot be fetched or decoded are skipped.
func (c *Composer) Quote(ctx context.Context, doc QuoteDocument) ([]byte, error) {
	pdf, err := c.quote(ctx, doc)
	if err != nil {
		return nil, err
	}
	return output(pdf)
}

// Receipt renders a payment receipt.
func (c *Composer) Receipt(ctx context.Context, doc ReceiptDocument) ([]byte, error) {
	pdf, err := c.receipt(ctx, doc)
	if err != nil {
		return nil, err
	}
	return output(pdf)
}

func (c *Composer) quote(ctx context.Context, doc QuoteDocument) (*gofpdf.Fpdf, error) {
	p := c.newPage("Esta cotización es una estimación y puede variar según las condiciones finales del proyecto.")
	c.header(ctx, p, "COTIZACIÓN", doc.Number)

	left := []string{doc.ClientName}
	for _, v := range []string{doc.ClientEmail, doc.ClientPhone, doc.ClientAddress} {
		if v != "" {
			left = append(left, v)
		}
	}
	right := []string{
		"Fecha: " + locale.Date(doc.IssuedAt),
		"Estado: " + doc.Status,
	}
	if doc.ValidUntil != nil {
		right = append(right, "Válida hasta: "+locale.Date(*doc.ValidUntil))
	}
	p.twoColumns("CLIENTE", left, "DETALLE", right)

	if doc.ProjectName != "" || doc.ProjectDescription != "" {
		p.sectionTitle("PROYECTO")
		if doc.ProjectName != "" {
			p.setFont("B", 10)
			p.multi(doc.ProjectName)
		}
		if doc.ProjectDescription != "" {
			p.setFont("", 10)
			p.multi(doc.ProjectDescription)
		}
		p.pdf.Ln(3)
	}

	p.itemsTable(doc.Items)
	p.totals([][2]string{
		{"Subtotal", p.money(doc.Subtotal)},
		{"IVA", p.money(doc.Tax)},
		{"Descuento", p.money(doc.Discount.Neg())},
		{"TOTAL", p.money(doc.Total)},
	})

	if doc.Notes != "" {
		p.sectionTitle("NOTAS")
		p.setFont("", 9)
		p.multi(doc.Notes)
	}

	if len(doc.Images) > 0 {
		p.sectionTitle("REFERENCIAS")
		for _, url := range doc.Images {
			c.fullWidthImage(ctx, p, url)
		}
	}

	return p.pdf, p.pdf.Error()
}

func (c *Composer) receipt(ctx context.Context, doc ReceiptDocument) (*gofpdf.Fpdf, error) {
	p := c.newPage("Este recibo confirma el pago indicado. Conserve este documento como comprobante.")
	c.header(ctx, p, "RECIBO DE PAGO", doc.Number)

	left := []string{doc.ClientName}
	if doc.ClientEmail != "" {
		left = append(left, doc.ClientEmail)
	}
	right := []string{
		"Fecha: " + locale.Date(doc.ReceiptDate),
		"Cotización: " + doc.QuoteNumber,
		"Forma de pago: " + doc.PaymentMethod,
	}
	p.twoColumns("RECIBIMOS DE", left, "DETALLE", right)

	p.amountBox("MONTO RECIBIDO", p.money(doc.Amount))

	p.sectionTitle("CONCEPTO")
	p.setFont("", 10)
	p.multi(doc.Concept)
	p.pdf.Ln(3)

	p.totals([][2]string{
		{"Total de la cotización", p.money(doc.QuoteTotal)},
		{"Total abonado", p.money(doc.PaidToDate)},
		{"Saldo pendiente", p.money(doc.Balance)},
	})

	if doc.Notes != "" {
		p.sectionTitle("NOTAS")
		p.setFont("", 9)
		p.multi(doc.Notes)
	}

	return p.pdf, p.pdf.Error()
}

func (c *Composer) newPage(disclaimer string) *page {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AliasNbPages("")

	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		p.setColor(mutedColor)
		p.setFont("I", 7)
		pdf.CellFormat(0, 4, p.tr(disclaimer), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 4, p.tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
		p.setColor([3]int{0, 0, 0})
	})
	pdf.AddPage()
	return p
}

func (c *Composer) header(ctx context.Context, p *page, title, number string) {
	pdf := p.pdf
	top := pdf.GetY()
	textX := pageMargin

	if c.company.LogoURL != "" {
		if name, w, h, ok := c.register(ctx, p, c.company.LogoURL); ok {
			logoH := 18.0
			logoW := logoH * w / h
			pdf.ImageOptions(name, pageMargin, top, logoW, logoH, false, gofpdf.ImageOptions{}, 0, "")
			textX = pageMargin + logoW + 4
		}
	}

	pdf.SetXY(textX, top)
	p.setColor(brandColor)
	p.setFont("B", 14)
	pdf.CellFormat(90, 7, p.tr(c.company.Name), "", 2, "L", false, 0, "")
	p.setColor(mutedColor)
	p.setFont("", 8)
	for _, v := range []string{c.company.LegalID, c.company.Address, c.company.Phone, c.company.Email, c.company.Website} {
		if v != "" {
			pdf.CellFormat(90, 4, p.tr(v), "", 2, "L", false, 0, "")
		}
	}

	pdf.SetXY(120, top)
	p.setColor(brandColor)
	p.setFont("B", 16)
	pdf.CellFormat(75, 8, p.tr(title), "", 2, "R", false, 0, "")
	p.setFont("B", 11)
	pdf.CellFormat(75, 6, p.tr(number), "", 2, "R", false, 0, "")
	p.setColor([3]int{0, 0, 0})

	y := top + 26
	if pdf.GetY() > y {
		y = pdf.GetY() + 2
	}
	pdf.SetDrawColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.Line(pageMargin, y, 210-pageMargin, y)
	pdf.SetXY(pageMargin, y+4)
}

// fullWidthImage embeds an image at content width, keeping its aspect ratio and
// starting a new page when it does not fit below the cursor.
func (c *Composer) fullWidthImage(ctx context.Context, p *page, url string) {
	name, w, h, ok := c.register(ctx, p, url)
	if !ok {
		return
	}

	pdf := p.pdf
	pageW, pageH := pdf.GetPageSize()
	maxW := pageW - 2*pageMargin
	maxH := pageH - pageMargin - bottomMargin

	drawW := maxW
	drawH := drawW * h / w
	if drawH > maxH {
		drawH = maxH
		drawW = drawH * w / h
	}

	if pdf.GetY()+drawH > pageH-bottomMargin {
		pdf.AddPage()
	}
	y := pdf.GetY()
	x := pageMargin + (maxW-drawW)/2
	pdf.ImageOptions(name, x, y, drawW, drawH, false, gofpdf.ImageOptions{}, 0, "")
	pdf.SetY(y + drawH + 4)
}

// register fetches and registers an image, returning its intrinsic size. Any
// failure is logged and leaves the document usable.
func (c *Composer) register(ctx context.Context, p *page, url string) (string, float64, float64, bool) {
	if c.images == nil {
		return "", 0, 0, false
	}
	data, imageType, err := c.images.Fetch(ctx, url)
	if err != nil {
		c.log.Warn("Skipping image", zap.String("url", url), zap.Error(err))
		return "", 0, 0, false
	}

	info := p.pdf.RegisterImageOptionsReader(url, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if err := p.pdf.Error(); err != nil || info == nil || info.Width() <= 0 || info.Height() <= 0 {
		c.log.Warn("Skipping undecodable image", zap.String("url", url), zap.Error(err))
		p.pdf.ClearError()
		return "", 0, 0, false
	}
	return url, info.Width(), info.Height(), true
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
