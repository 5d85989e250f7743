package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// pathID parses the :id parameter, answering 400 when it is not a UUID
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	return parseID(c, c.Param("id"), what)
}

// parseID parses raw as a UUID, answering 400 when it is not one
func parseID(c *gin.Context, raw, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, what+" inválido")
		return uuid.Nil, false
	}
	return id, true
}

// sendDocument writes a PDF inline, or as a download with ?download=1
func sendDocument(c *gin.Context, doc *service.Document) {
	disposition := "inline"
	if download, _ := strconv.ParseBool(c.Query("download")); download {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition+`; filename="`+doc.Filename+`"`)
	c.Data(200, "application/pdf", doc.Content)
}
