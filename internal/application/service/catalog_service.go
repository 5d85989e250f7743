package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/internal/domain/repository"
	"github.com/sangkips/remodela-api/pkg/apperror"
	"github.com/sangkips/remodela-api/pkg/pagination"
	"github.com/sangkips/remodela-api/pkg/utils"
	"go.uber.org/zap"
)

// catalogFields tells the generic service where the shared columns of T live.
type catalogFields[T repository.CatalogEntity] struct {
	notFound string
	title    func(*T) string
	slug     func(*T) *string
	live     func(*T) bool
	// adopt copies identity columns from the stored row onto an incoming replacement
	adopt func(dst, stored *T)
}

// CatalogService manages products, services or projects of the public site.
type CatalogService[T repository.CatalogEntity] struct {
	repo   repository.CatalogRepository[T]
	fields catalogFields[T]
	log    *zap.Logger
}

type (
	ProductService = CatalogService[entity.Product]
	ServiceService = CatalogService[entity.Service]
	ProjectService = CatalogService[entity.Project]
)

func NewProductService(repo repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{
		repo: repo,
		fields: catalogFields[entity.Product]{
			notFound: "Producto no encontrado",
			title:    func(p *entity.Product) string { return p.Name },
			slug:     func(p *entity.Product) *string { return &p.Slug },
			live:     func(p *entity.Product) bool { return p.Published },
			adopt: func(dst, stored *entity.Product) {
				dst.ID, dst.CreatedAt = stored.ID, stored.CreatedAt
			},
		},
		log: log.Named("products"),
	}
}

func NewServiceService(repo repository.ServiceRepository, log *zap.Logger) *ServiceService {
	return &ServiceService{
		repo: repo,
		fields: catalogFields[entity.Service]{
			notFound: "Servicio no encontrado",
			title:    func(s *entity.Service) string { return s.Name },
			slug:     func(s *entity.Service) *string { return &s.Slug },
			live:     func(s *entity.Service) bool { return s.Published },
			adopt: func(dst, stored *entity.Service) {
				dst.ID, dst.CreatedAt = stored.ID, stored.CreatedAt
			},
		},
		log: log.Named("services"),
	}
}

func NewProjectService(repo repository.ProjectRepository, log *zap.Logger) *ProjectService {
	return &ProjectService{
		repo: repo,
		fields: catalogFields[entity.Project]{
			notFound: "Proyecto no encontrado",
			title:    func(p *entity.Project) string { return p.Title },
			slug:     func(p *entity.Project) *string { return &p.Slug },
			live:     func(p *entity.Project) bool { return p.Published },
			adopt: func(dst, stored *entity.Project) {
				dst.ID, dst.CreatedAt = stored.ID, stored.CreatedAt
			},
		},
		log: log.Named("projects"),
	}
}

// CatalogListInput represents the input for listing catalog records
type CatalogListInput struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Category      string
	FeaturedOnly  bool
	PublishedOnly bool
}

// Create stores item, deriving a unique slug from its title when none is given.
func (s *CatalogService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if strings.TrimSpace(s.fields.title(item)) == "" {
		return nil, apperror.NewFieldError("name", "El nombre es requerido")
	}
	if err := s.assignSlug(ctx, item, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("El slug ya está en uso")
		}
		return nil, err
	}
	s.log.Info("catalog record created", zap.String("slug", *s.fields.slug(item)))
	return item, nil
}

// Update replaces the stored record with item
func (s *CatalogService[T]) Update(ctx context.Context, id uuid.UUID, item *T) (*T, error) {
	stored, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.fields.title(item)) == "" {
		return nil, apperror.NewFieldError("name", "El nombre es requerido")
	}

	s.fields.adopt(item, stored)
	if err := s.assignSlug(ctx, item, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("El slug ya está en uso")
		}
		return nil, err
	}
	return item, nil
}

func (s *CatalogService[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError(s.fields.notFound)
	}
	return item, nil
}

// GetPublished looks a record up by slug for the public site. Drafts are hidden.
func (s *CatalogService[T]) GetPublished(ctx context.Context, slug string) (*T, error) {
	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if item == nil || !s.fields.live(item) {
		return nil, apperror.NewNotFoundError(s.fields.notFound)
	}
	return item, nil
}

func (s *CatalogService[T]) List(ctx context.Context, input *CatalogListInput) (*pagination.PaginatedResult[T], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	items, total, err := s.repo.List(ctx, &repository.CatalogFilterParams{
		Pagination:    input.Pagination,
		Search:        input.Search,
		PublishedOnly: input.PublishedOnly,
		Category:      input.Category,
		FeaturedOnly:  input.FeaturedOnly,
	})
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(items,
		pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)), nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// assignSlug normalizes the requested slug, or the title when empty, and
// appends -2, -3, ... until it is free.
func (s *CatalogService[T]) assignSlug(ctx context.Context, item *T, self uuid.UUID) error {
	slug := s.fields.slug(item)
	base := utils.Slugify(*slug)
	if base == "" {
		base = utils.Slugify(s.fields.title(item))
	}
	if base == "" {
		return apperror.NewFieldError("slug", "No se pudo generar un slug a partir del nombre")
	}

	candidate := base
	for n := 2; ; n++ {
		taken, err := s.repo.SlugExists(ctx, candidate, self)
		if err != nil {
			return err
		}
		if !taken {
			*slug = candidate
			return nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
