package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/domain/entity"
	domainRepo "github.com/sangkips/remodela-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository[T domainRepo.CatalogEntity] struct {
	db            *gorm.DB
	searchColumns []string
	order         string
	hasCategory   bool
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &catalogRepository[entity.Product]{
		db:            db,
		searchColumns: []string{"name", "category", "description"},
		order:         "featured DESC, created_at DESC",
		hasCategory:   true,
	}
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) domainRepo.ServiceRepository {
	return &catalogRepository[entity.Service]{
		db:            db,
		searchColumns: []string{"name", "summary"},
		order:         "position ASC, name ASC",
	}
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainRepo.ProjectRepository {
	return &catalogRepository[entity.Project]{
		db:            db,
		searchColumns: []string{"title", "location", "description"},
		order:         "created_at DESC",
	}
}

func (r *catalogRepository[T]) Create(ctx context.Context, item *T) error {
	return translate(conn(ctx, r.db).Create(item).Error)
}

func (r *catalogRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := conn(ctx, r.db).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var item T
	err := conn(ctx, r.db).First(&item, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository[T]) Update(ctx context.Context, item *T) error {
	return translate(conn(ctx, r.db).Save(item).Error)
}

func (r *catalogRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(new(T), "id = ?", id).Error
}

func (r *catalogRepository[T]) List(ctx context.Context, params *domainRepo.CatalogFilterParams) ([]T, int64, error) {
	var items []T
	var total int64

	query := conn(ctx, r.db).Model(new(T)).
		Scopes(SearchScope(params.Search, r.searchColumns...))

	if params.PublishedOnly {
		query = query.Where("published = ?", true)
	}
	if r.hasCategory && params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if r.hasCategory && params.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order(r.order).
		Find(&items).Error

	return items, total, err
}

func (r *catalogRepository[T]) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(new(T)).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
