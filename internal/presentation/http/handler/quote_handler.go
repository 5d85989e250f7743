package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/domain/enum"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/request"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
	"github.com/sangkips/remodela-api/pkg/pagination"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService    *service.QuoteService
	documentService *service.DocumentService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, documentService *service.DocumentService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService, documentService: documentService}
}

// List handles listing quotes
// @Summary List Quotes
// @Description Get all quotes with pagination and filtering
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Matches number, client or project"
// @Param status query string false "draft, sent, accepted, rejected or expired"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	var req request.QuoteFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	var status *enum.QuoteStatus
	if req.Status != "" {
		st := enum.QuoteStatus(req.Status)
		status = &st
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), &service.QuoteListInput{
		Pagination: pagination.FromQuery(req.Page, req.PerPage),
		Search:     req.Search,
		Status:     status,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cotizaciones obtenidas", result)
}

// Get handles getting a single quote with its items
// @Summary Get Quote
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cotización obtenida", quote)
}

// Create handles creating a quote. The number is assigned by the server.
// @Summary Create Quote
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body request.QuoteRequest true "Quote data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), quoteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cotización creada", quote)
}

// Update handles replacing a quote's fields and items
// @Summary Update Quote
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.QuoteRequest true "Quote data"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, quoteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cotización actualizada", quote)
}

// ChangeStatus handles PATCH /quotes/{id}/status
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	var req request.QuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	quote, err := h.quoteService.ChangeStatus(c.Request.Context(), id, enum.QuoteStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estado actualizado", quote)
}

// MarkSent records a send done outside the API, such as a WhatsApp share
func (h *QuoteHandler) MarkSent(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	quote, err := h.quoteService.MarkSent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cotización marcada como enviada", quote)
}

func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cotización eliminada", nil)
}

// Balance handles GET /quotes/{id}/balance
// @Summary Quote Balance
// @Description Total, paid and pending amounts with the running balance after each receipt
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/balance [get]
func (h *QuoteHandler) Balance(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	balance, err := h.quoteService.Balance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Saldo obtenido", balance)
}

// PDF streams the quote document
func (h *QuoteHandler) PDF(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	doc, err := h.documentService.QuotePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendDocument(c, doc)
}

// Email sends the PDF to the client and marks the quote sent
// @Summary Email Quote
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Router /quotes/{id}/email [post]
func (h *QuoteHandler) Email(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	quote, err := h.documentService.EmailQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cotización enviada por correo", quote)
}

// WhatsApp returns the click-to-chat link without changing the quote
func (h *QuoteHandler) WhatsApp(c *gin.Context) {
	id, ok := pathID(c, "ID de cotización")
	if !ok {
		return
	}

	link, err := h.documentService.QuoteWhatsApp(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Enlace de WhatsApp generado", link)
}

func quoteInput(req *request.QuoteRequest) *service.QuoteInput {
	items := make([]service.QuoteItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.QuoteItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return &service.QuoteInput{
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		ClientPhone:        req.ClientPhone,
		ClientAddress:      req.ClientAddress,
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		ValidUntil:         request.ParseDate(req.ValidUntil),
		Tax:                req.Tax,
		Discount:           req.Discount,
		Notes:              req.Notes,
		Images:             req.Images,
		Items:              items,
	}
}
