package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/request"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
	"github.com/sangkips/remodela-api/pkg/pagination"
)

// ReceiptHandler handles payment receipt HTTP requests
type ReceiptHandler struct {
	receiptService  *service.ReceiptService
	documentService *service.DocumentService
}

func NewReceiptHandler(receiptService *service.ReceiptService, documentService *service.DocumentService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, documentService: documentService}
}

// List handles listing receipts, optionally for one quote
// @Summary List Receipts
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param quote_id query string false "Only receipts of this quote"
// @Param search query string false "Matches number, client or concept"
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	var req request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.ReceiptListInput{
		Pagination: pagination.FromQuery(req.Page, req.PerPage),
		Search:     req.Search,
	}
	if req.QuoteID != "" {
		quoteID, ok := parseID(c, req.QuoteID, "ID de cotización")
		if !ok {
			return
		}
		input.QuoteID = &quoteID
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Recibos obtenidos", result)
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recibo obtenido", receipt)
}

// Create handles recording a payment
// @Summary Create Receipt
// @Description Numbers the receipt and rejects amounts above the quote's pending balance
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body request.CreateReceiptRequest true "Receipt data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quoteID, ok := parseID(c, req.QuoteID, "ID de cotización")
	if !ok {
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.ReceiptInput{
		QuoteID:       quoteID,
		Amount:        req.Amount,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		ReceiptDate:   request.ParseDate(req.ReceiptDate),
		Concept:       req.Concept,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Recibo creado", receipt)
}

// Update handles editing a receipt's amount, method, date or concept
// @Summary Update Receipt
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Receipt ID"
// @Param request body request.ReceiptRequest true "Receipt data"
// @Success 200 {object} response.APIResponse
// @Router /receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	var req request.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), id, &service.ReceiptInput{
		Amount:        req.Amount,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		ReceiptDate:   request.ParseDate(req.ReceiptDate),
		Concept:       req.Concept,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recibo actualizado", receipt)
}

func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recibo eliminado", nil)
}

func (h *ReceiptHandler) MarkSent(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	receipt, err := h.receiptService.MarkSent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recibo marcado como enviado", receipt)
}

func (h *ReceiptHandler) PDF(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	doc, err := h.documentService.ReceiptPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendDocument(c, doc)
}

// Email sends the receipt PDF to the client and records sent_at
func (h *ReceiptHandler) Email(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	receipt, err := h.documentService.EmailReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recibo enviado por correo", receipt)
}

func (h *ReceiptHandler) WhatsApp(c *gin.Context) {
	id, ok := pathID(c, "ID de recibo")
	if !ok {
		return
	}

	link, err := h.documentService.ReceiptWhatsApp(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Enlace de WhatsApp generado", link)
}
