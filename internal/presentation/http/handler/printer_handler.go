package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Estado de la impresora", h.printerService.Status(c.Request.Context()))
}

// PrintReceipt prints the payment slip of a receipt.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	slip, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		// The slip was built but the device failed; hand it back so it can be shown on screen.
		if slip != nil {
			response.OK(c, "Recibo generado pero no se pudo imprimir", gin.H{
				"slip":    slip,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Recibo impreso", gin.H{"slip": slip})
}
