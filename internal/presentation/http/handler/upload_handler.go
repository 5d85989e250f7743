package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
)

// maxUploadRead caps how much of a multipart file is buffered; the store
// applies the configured limit on top of this.
const maxUploadRead = 20 << 20

// UploadHandler accepts image uploads for catalog records and quotes
type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage handles multipart POST /uploads/images with fields file and folder
// @Summary Upload Image
// @Tags uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JPEG, PNG, WebP or GIF image"
// @Param folder formData string false "products, services, projects, quotes or company"
// @Success 201 {object} response.APIResponse
// @Router /uploads/images [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Se requiere el archivo en el campo file")
		return
	}

	f, err := header.Open()
	if err != nil {
		response.BadRequest(c, "No se pudo leer el archivo")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadRead+1))
	if err != nil {
		response.BadRequest(c, "No se pudo leer el archivo")
		return
	}

	url, err := h.uploadService.UploadImage(c.Request.Context(), c.PostForm("folder"), data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Imagen subida", gin.H{"url": url})
}
