package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	"github.com/sangkips/remodela-api/pkg/pagination"
)

// CatalogEntity is any public catalog record.
type CatalogEntity interface {
	entity.Product | entity.Service | entity.Project
}

// CatalogRepository defines the data operations shared by products, services and projects
type CatalogRepository[T CatalogEntity] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CatalogFilterParams) ([]T, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// CatalogFilterParams contains filtering parameters for catalog queries
type CatalogFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PublishedOnly bool
	Category      string
	FeaturedOnly  bool
}

type (
	ProductRepository = CatalogRepository[entity.Product]
	ServiceRepository = CatalogRepository[entity.Service]
	ProjectRepository = CatalogRepository[entity.Project]
)
