package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"88887777", "88887777", false},
		{"8888-7777", "88887777", false},
		{"+506 8888 7777", "88887777", false},
		{"(506) 2222-3333", "22223333", false},
		{"506-88887777", "88887777", false},
		{"00506 8888 7777", "88887777", false},
		{"00506-2222-3333", "22223333", false},
		{"0050688887777", "88887777", false},
		{"00507 8888 7777", "", true},
		{"1234", "", true},
		{"", "", true},
		{"+1 305 555 1234", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLink(t *testing.T) {
	link, err := Link("+506 8888-7777", "Hola Ana, su cotización COT-2026-0001 por ₡100 000,00")
	require.NoError(t, err)

	assert.Contains(t, link, "https://wa.me/50688887777?text=")
	assert.Contains(t, link, "Hola%20Ana%2C%20su%20cotizaci%C3%B3n%20COT-2026-0001")
	assert.NotContains(t, link, "+")
}

func TestLink_InvalidPhone(t *testing.T) {
	_, err := Link("123", "hola")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
