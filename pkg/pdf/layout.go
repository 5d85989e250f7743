package pdf

import (
	"github.com/jung-kurt/gofpdf"
	"github.com/sangkips/remodela-api/pkg/locale"
	"github.com/shopspring/decimal"
)

// page wraps the document with cp1252 text translation and shared drawing helpers.
type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"Descripción", 78, "L"},
	{"Cant.", 16, "C"},
	{"Precio unit.", 29, "R"},
	{"Total", 28, "R"},
	{"Acumulado", 29, "R"},
}

func (p *page) setFont(style string, size float64) {
	p.pdf.SetFont(fontFamily, style, size)
}

func (p *page) setColor(rgb [3]int) {
	p.pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
}

func (p *page) money(d decimal.Decimal) string {
	return locale.Money(d, locale.PDFColonSign)
}

func (p *page) multi(text string) {
	p.pdf.MultiCell(0, 5, p.tr(text), "", "L", false)
}

func (p *page) sectionTitle(title string) {
	p.ensureSpace(14)
	p.setColor(brandColor)
	p.setFont("B", 10)
	p.pdf.CellFormat(0, 7, p.tr(title), "B", 1, "L", false, 0, "")
	p.setColor([3]int{0, 0, 0})
	p.pdf.Ln(2)
}

// ensureSpace starts a new page when fewer than h millimetres remain.
func (p *page) ensureSpace(h float64) bool {
	_, pageH := p.pdf.GetPageSize()
	if p.pdf.GetY()+h > pageH-bottomMargin {
		p.pdf.AddPage()
		return true
	}
	return false
}

func (p *page) twoColumns(leftTitle string, left []string, rightTitle string, right []string) {
	pdf := p.pdf
	top := pdf.GetY()
	colW := (210 - 2*pageMargin) / 2

	draw := func(x float64, title string, lines []string) float64 {
		pdf.SetXY(x, top)
		p.setColor(mutedColor)
		p.setFont("B", 8)
		pdf.CellFormat(colW, 5, p.tr(title), "", 2, "L", false, 0, "")
		p.setColor([3]int{0, 0, 0})
		for i, line := range lines {
			if i == 0 {
				p.setFont("B", 10)
			} else {
				p.setFont("", 9)
			}
			pdf.SetX(x)
			pdf.MultiCell(colW-4, 5, p.tr(line), "", "L", false)
		}
		return pdf.GetY()
	}

	leftBottom := draw(pageMargin, leftTitle, left)
	rightBottom := draw(pageMargin+colW, rightTitle, right)
	if rightBottom > leftBottom {
		leftBottom = rightBottom
	}
	pdf.SetXY(pageMargin, leftBottom+5)
}

func (p *page) itemsHeader() {
	pdf := p.pdf
	pdf.SetFillColor(brandColor[0], brandColor[1], brandColor[2])
	pdf.SetTextColor(255, 255, 255)
	p.setFont("B", 9)
	for _, col := range itemColumns {
		pdf.CellFormat(col.width, 7, p.tr(col.title), "", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
	p.setColor([3]int{0, 0, 0})
}

// itemsTable prints the lines with a running total, repeating the header on each page.
func (p *page) itemsTable(items []Line) {
	pdf := p.pdf
	p.ensureSpace(20)
	p.itemsHeader()

	running := decimal.Zero
	descW := itemColumns[0].width
	for i, item := range items {
		running = running.Add(item.Total)

		p.setFont("", 9)
		lines := pdf.SplitLines([]byte(p.tr(item.Description)), descW-2)
		rowH := lineHeight
		if n := len(lines); n > 1 {
			rowH = float64(n) * 4.5
		}
		if p.ensureSpace(rowH) {
			p.itemsHeader()
			p.setFont("", 9)
		}

		x, y := pdf.GetXY()
		if i%2 == 1 {
			pdf.SetFillColor(lightFill[0], lightFill[1], lightFill[2])
			pdf.Rect(x, y, 210-2*pageMargin, rowH, "F")
		}

		if len(lines) > 1 {
			pdf.MultiCell(descW, 4.5, p.tr(item.Description), "", "L", false)
		} else {
			pdf.CellFormat(descW, rowH, p.tr(item.Description), "", 0, "L", false, 0, "")
		}
		pdf.SetXY(x+descW, y)

		cells := []string{
			item.Quantity.String(),
			p.money(item.UnitPrice),
			p.money(item.Total),
			p.money(running),
		}
		for j, text := range cells {
			col := itemColumns[j+1]
			pdf.CellFormat(col.width, rowH, p.tr(text), "", 0, col.align, false, 0, "")
		}
		pdf.SetXY(x, y+rowH)
	}
	pdf.Ln(3)
}

func (p *page) totals(rows [][2]string) {
	pdf := p.pdf
	p.ensureSpace(float64(len(rows))*7 + 4)
	for i, row := range rows {
		last := i == len(rows)-1
		pdf.SetX(210 - pageMargin - 90)
		if last {
			pdf.SetFillColor(lightFill[0], lightFill[1], lightFill[2])
			p.setFont("B", 11)
		} else {
			p.setFont("", 10)
		}
		pdf.CellFormat(50, 7, p.tr(row[0]), "", 0, "L", last, 0, "")
		pdf.CellFormat(40, 7, p.tr(row[1]), "", 1, "R", last, 0, "")
	}
	pdf.Ln(4)
}

func (p *page) amountBox(label, amount string) {
	pdf := p.pdf
	p.ensureSpace(24)
	x, y := pdf.GetXY()
	w := 210 - 2*pageMargin
	pdf.SetFillColor(lightFill[0], lightFill[1], lightFill[2])
	pdf.Rect(x, y, w, 20, "F")

	pdf.SetXY(x+4, y+3)
	p.setColor(mutedColor)
	p.setFont("B", 8)
	pdf.CellFormat(w-8, 5, p.tr(label), "", 2, "L", false, 0, "")
	p.setColor(brandColor)
	p.setFont("B", 18)
	pdf.CellFormat(w-8, 9, p.tr(amount), "", 2, "L", false, 0, "")
	p.setColor([3]int{0, 0, 0})
	pdf.SetXY(x, y+24)
}
