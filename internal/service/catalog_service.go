package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/repository"
)

// Catalog errors.
var (
	ErrCatalogNotFound = errors.New("catalog entry not found")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrCategoryInUse   = errors.New("category still referenced by products")
)

// CatalogService covers category and product CRUD for the marketing site.
type CatalogService struct {
	categories *repository.CategoryRepository
	products   *repository.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categories *repository.CategoryRepository, products *repository.ProductRepository) *CatalogService {
	return &CatalogService{categories: categories, products: products}
}

// ─── Categories ─────────────────────────────────────────────────────────

// ListCategories returns all categories in display order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory inserts a category after checking slug uniqueness.
func (s *CatalogService) CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	taken, err := s.categories.SlugExists(ctx, req.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	cat := &model.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Slug:      req.Slug,
		SortOrder: req.SortOrder,
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory writes category fields after checking slug uniqueness.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, req *model.CategoryRequest) (*model.Category, error) {
	taken, err := s.categories.SlugExists(ctx, req.Slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	cat := &model.Category{ID: id, Name: req.Name, Slug: req.Slug, SortOrder: req.SortOrder}
	updated, err := s.categories.Update(ctx, cat)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrCatalogNotFound
	}
	return s.categories.GetByID(ctx, id)
}

// DeleteCategory removes a category unless products still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	inUse, err := s.categories.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCatalogNotFound
	}
	return nil
}

// ─── Products ───────────────────────────────────────────────────────────

// ListProducts returns products, optionally filtered to one category.
func (s *CatalogService) ListProducts(ctx context.Context, categoryID string) ([]model.Product, error) {
	return s.products.List(ctx, categoryID)
}

// GetProduct retrieves one product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCatalogNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateProduct inserts a product after validating slug and category.
func (s *CatalogService) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	taken, err := s.products.SlugExists(ctx, req.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCatalogNotFound
		}
		return nil, err
	}

	p := &model.Product{
		ID:          uuid.New().String(),
		Slug:        req.Slug,
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		Size:        req.Size,
		Description: req.Description,
		PDFURL:      req.PDFURL,
		SortOrder:   req.SortOrder,
		InStock:     req.InStock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, p.ID)
}

// UpdateProduct writes product fields after the same checks as create.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	taken, err := s.products.SlugExists(ctx, req.Slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	p := &model.Product{
		ID:          id,
		Slug:        req.Slug,
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		Size:        req.Size,
		Description: req.Description,
		PDFURL:      req.PDFURL,
		SortOrder:   req.SortOrder,
		InStock:     req.InStock,
	}
	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrCatalogNotFound
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCatalogNotFound
	}
	return nil
}
