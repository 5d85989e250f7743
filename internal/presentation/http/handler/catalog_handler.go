package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/application/service"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/request"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
	"github.com/sangkips/remodela-api/pkg/pagination"
	"gorm.io/datatypes"
)

// CatalogHandler serves admin CRUD and the public read-only view of one
// catalog collection. R is the request body that builds a T.
type CatalogHandler[T repository.CatalogEntity, R any] struct {
	service *service.CatalogService[T]
	build   func(*R) *T
	plural  string
}

type (
	ProductHandler = CatalogHandler[entity.Product, request.ProductRequest]
	ServiceHandler = CatalogHandler[entity.Service, request.ServiceRequest]
	ProjectHandler = CatalogHandler[entity.Project, request.ProjectRequest]
)

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{
		service: svc,
		plural:  "Productos",
		build: func(r *request.ProductRequest) *entity.Product {
			return &entity.Product{
				Name:        r.Name,
				Slug:        r.Slug,
				Category:    r.Category,
				Description: r.Description,
				Price:       r.Price,
				Images:      datatypes.JSONSlice[string](r.Images),
				Featured:    r.Featured,
				Published:   r.Published,
			}
		},
	}
}

func NewServiceHandler(svc *service.ServiceService) *ServiceHandler {
	return &ServiceHandler{
		service: svc,
		plural:  "Servicios",
		build: func(r *request.ServiceRequest) *entity.Service {
			return &entity.Service{
				Name:        r.Name,
				Slug:        r.Slug,
				Summary:     r.Summary,
				Description: r.Description,
				Icon:        r.Icon,
				Images:      datatypes.JSONSlice[string](r.Images),
				Position:    r.Position,
				Published:   r.Published,
			}
		},
	}
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service: svc,
		plural:  "Proyectos",
		build: func(r *request.ProjectRequest) *entity.Project {
			return &entity.Project{
				Title:       r.Title,
				Slug:        r.Slug,
				Location:    r.Location,
				Description: r.Description,
				CoverImage:  r.CoverImage,
				Gallery:     datatypes.JSONSlice[string](r.Gallery),
				CompletedAt: request.ParseDate(r.CompletedAt),
				Published:   r.Published,
			}
		},
	}
}

// List returns drafts and published records for the back office
func (h *CatalogHandler[T, R]) List(c *gin.Context) {
	h.list(c, false)
}

// PublicList returns only published records
func (h *CatalogHandler[T, R]) PublicList(c *gin.Context) {
	h.list(c, true)
}

func (h *CatalogHandler[T, R]) list(c *gin.Context, publishedOnly bool) {
	var req request.CatalogFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), &service.CatalogListInput{
		Pagination:    pagination.FromQuery(req.Page, req.PerPage),
		Search:        req.Search,
		Category:      req.Category,
		FeaturedOnly:  req.Featured,
		PublishedOnly: publishedOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, h.plural+" obtenidos", result)
}

func (h *CatalogHandler[T, R]) Get(c *gin.Context) {
	id, ok := pathID(c, "ID")
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Registro obtenido", item)
}

// PublicGet looks a published record up by its slug
func (h *CatalogHandler[T, R]) PublicGet(c *gin.Context) {
	item, err := h.service.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Registro obtenido", item)
}

func (h *CatalogHandler[T, R]) Create(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), h.build(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registro creado", item)
}

func (h *CatalogHandler[T, R]) Update(c *gin.Context) {
	id, ok := pathID(c, "ID")
	if !ok {
		return
	}

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, h.build(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Registro actualizado", item)
}

func (h *CatalogHandler[T, R]) Delete(c *gin.Context) {
	id, ok := pathID(c, "ID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Registro eliminado", nil)
}
