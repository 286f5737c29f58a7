package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

// CategoryRepository handles product category data access.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// List retrieves all categories ordered for display.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, sort_order, created_at
		 FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	c := &model.Category{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, slug, sort_order, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SlugExists reports whether slug is taken by a category other than excludeID.
func (r *CategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id::text != $2)`,
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO categories (id, name, slug, sort_order)
		 VALUES ($1, $2, $3, $4) RETURNING created_at`,
		c.ID, c.Name, c.Slug, c.SortOrder,
	).Scan(&c.CreatedAt)
}

// Update writes the mutable fields of a category.
func (r *CategoryRepository) Update(ctx context.Context, c *model.Category) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET name = $1, slug = $2, sort_order = $3 WHERE id = $4`,
		c.Name, c.Slug, c.SortOrder, c.ID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// HasProducts reports whether any product still references the category.
func (r *CategoryRepository) HasProducts(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
