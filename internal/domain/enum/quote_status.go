package enum

import "fmt"

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// QuoteStatuses lists every valid status in display order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusExpired,
}

func (s QuoteStatus) String() string {
	return string(s)
}

func (s QuoteStatus) IsValid() bool {
	for _, v := range QuoteStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the Spanish name shown on documents.
func (s QuoteStatus) Label() string {
	switch s {
	case QuoteStatusDraft:
		return "Borrador"
	case QuoteStatusSent:
		return "Enviada"
	case QuoteStatusAccepted:
		return "Aceptada"
	case QuoteStatusRejected:
		return "Rechazada"
	case QuoteStatusExpired:
		return "Vencida"
	}
	return string(s)
}

// ParseQuoteStatus validates a raw status value.
func ParseQuoteStatus(raw string) (QuoteStatus, error) {
	s := QuoteStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid quote status %q", raw)
	}
	return s, nil
}
