// Package locale formats amounts and dates the way Costa Rican clients read them.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// ColonSign is the Unicode colón used in email bodies and API text.
	ColonSign = "₡"
	// PDFColonSign is the closest glyph available in the cp1252 core PDF fonts.
	PDFColonSign = "¢"

	groupSeparator = "\u00a0"
)

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// CRC formats an amount as es-CR colones, e.g. ₡1 234 567,89.
func CRC(amount decimal.Decimal) string {
	return Money(amount, ColonSign)
}

// Money formats amount with two decimals, non-breaking space grouping and a comma decimal mark.
func Money(amount decimal.Decimal, symbol string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteRune(r)
	}

	return sign + symbol + b.String() + "," + frac
}

// Date renders dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// LongDate renders "15 de octubre de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}
