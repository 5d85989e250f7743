package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResendSender_NotConfigured(t *testing.T) {
	s := NewResendSender(Config{FromEmail: "a@b.cr"}, zap.NewNop())
	_, err := s.Send(context.Background(), Message{To: []string{"c@d.cr"}})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestResendSender_From(t *testing.T) {
	s := NewResendSender(Config{FromName: "Remodela", FromEmail: "hola@remodela.cr"}, zap.NewNop())
	assert.Equal(t, "Remodela <hola@remodela.cr>", s.from())

	s = NewResendSender(Config{FromEmail: "hola@remodela.cr"}, zap.NewNop())
	assert.Equal(t, "hola@remodela.cr", s.from())
}

func TestRenderDocument(t *testing.T) {
	html, err := RenderDocument(DocumentEmail{
		CompanyName: "Remodela",
		ClientName:  "Ana <Mora>",
		Title:       "Cotización",
		Number:      "COT-2026-0001",
		Rows:        []Row{{Label: "Total", Value: "₡100 000,00"}},
	})
	require.NoError(t, err)

	assert.Contains(t, html, "COT-2026-0001")
	assert.Contains(t, html, "₡100 000,00")
	assert.Contains(t, html, "Ana &lt;Mora&gt;")
	assert.False(t, strings.Contains(html, "<Mora>"))
}
