package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotePDF(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 250000)

	doc, err := f.docs.QuotePDF(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "COT-2026-0001.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}

func TestReceiptPDF(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 250000)
	r := f.pay(t, id, 100000, f.calendar.Today())

	doc, err := f.docs.ReceiptPDF(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "REC-2026-0001.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
}

func TestEmailQuote_MarksSentOnSuccess(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 250000)

	q, err := f.docs.EmailQuote(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, f.sender.sent, 1)
	msg := f.sender.sent[0]
	assert.Equal(t, []string{"ana@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "COT-2026-0001")
	assert.Contains(t, msg.HTML, "Ana Mora")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "COT-2026-0001.pdf", msg.Attachments[0].Filename)

	assert.Equal(t, enum.QuoteStatusSent, q.Status)
	require.NotNil(t, q.SentAt)
	require.NotNil(t, q.ValidUntil)
	assert.Equal(t, "2026-03-30", q.ValidUntil.Format("2006-01-02"))
}

func TestEmailQuote_FailureLeavesQuoteUntouched(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 250000)
	f.sender.err = errors.New("The domain is not verified")

	_, err := f.docs.EmailQuote(context.Background(), id)
	appErr := requireAppError(t, err, http.StatusBadGateway)
	assert.Contains(t, appErr.Message, "The domain is not verified")

	q, err := f.quotes.GetQuote(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusDraft, q.Status)
	assert.Nil(t, q.SentAt)
	assert.Nil(t, q.ValidUntil)
}

func TestEmailQuote_NotConfigured(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 1000)
	f.sender.err = email.ErrNotConfigured

	_, err := f.docs.EmailQuote(context.Background(), id)
	requireAppError(t, err, http.StatusServiceUnavailable)
}

func TestEmailQuote_RequiresClientEmail(t *testing.T) {
	f := newFixture(t)
	in := quoteInput(1000)
	in.ClientEmail = ""
	q, err := f.quotes.CreateQuote(context.Background(), in)
	require.NoError(t, err)

	_, err = f.docs.EmailQuote(context.Background(), q.ID)
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "client_email", appErr.Errors[0].Field)
	assert.Empty(t, f.sender.sent)
}

func TestEmailReceipt(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 1000)
	r := f.pay(t, id, 400, f.calendar.Today())

	got, err := f.docs.EmailReceipt(context.Background(), r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.SentAt)
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "REC-2026-0001.pdf", f.sender.sent[0].Attachments[0].Filename)
}

func TestQuoteWhatsApp(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 1000)

	link, err := f.docs.QuoteWhatsApp(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.URL, "https://wa.me/50688887777?text="))
	assert.Equal(t, "88887777", link.Phone)
	assert.Contains(t, link.Message, "COT-2026-0001")
	assert.NotContains(t, link.URL, "+")

	q, err := f.quotes.GetQuote(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusDraft, q.Status)
}

func TestQuoteWhatsApp_InvalidPhone(t *testing.T) {
	f := newFixture(t)
	in := quoteInput(1000)
	in.ClientPhone = "12345"
	q, err := f.quotes.CreateQuote(context.Background(), in)
	require.NoError(t, err)

	_, err = f.docs.QuoteWhatsApp(context.Background(), q.ID)
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "client_phone", appErr.Errors[0].Field)
}

func TestReceiptWhatsApp(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t, 1000)
	r := f.pay(t, id, 400, f.calendar.Today())

	link, err := f.docs.ReceiptWhatsApp(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Contains(t, link.Message, "REC-2026-0001")
	assert.Contains(t, link.Message, "COT-2026-0001")
}
