package enum

// DocumentKind identifies a numbered document class. Each kind owns an
// independent per-year counter.
type DocumentKind string

const (
	DocumentKindQuote   DocumentKind = "quote"
	DocumentKindReceipt DocumentKind = "receipt"
)

// Prefix returns the number prefix printed on documents of this kind.
func (k DocumentKind) Prefix() string {
	switch k {
	case DocumentKindQuote:
		return "COT"
	case DocumentKindReceipt:
		return "REC"
	}
	return ""
}
