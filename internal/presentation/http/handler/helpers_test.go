package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	cases := []struct {
		name   string
		raw    string
		wantOK bool
	}{
		{"canonical", id.String(), true},
		{"empty", "", false},
		{"truncated", id.String()[:20], false},
		{"not hex", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			got, ok := parseID(c, tc.raw, "ID de cotización")
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, id, got)
				return
			}
			assert.Equal(t, uuid.Nil, got)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "ID de cotización inválido")
		})
	}
}
