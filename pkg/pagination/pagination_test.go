package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	t.Run("uses defaults for empty values", func(t *testing.T) {
		p := FromQuery("", "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 15, p.PerPage)
	})

	t.Run("clamps out of range values", func(t *testing.T) {
		p := FromQuery("-3", "500")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 100, p.PerPage)
	})

	t.Run("parses valid values", func(t *testing.T) {
		p := FromQuery("3", "20")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 20, p.PerPage)
		assert.Equal(t, 40, p.Offset())
	})
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 25)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext)
}
