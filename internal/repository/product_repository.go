package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

const productSelect = `
	SELECT p.id, p.slug, p.title, p.category_id, c.name, p.size, p.description,
	       p.pdf_url, p.sort_order, p.in_stock, p.created_at, p.updated_at
	FROM products p JOIN categories c ON p.category_id = c.id`

// ProductRepository handles product catalog data access.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.CategoryID, &p.CategoryName, &p.Size,
		&p.Description, &p.PDFURL, &p.SortOrder, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves all products, optionally filtered by category.
func (r *ProductRepository) List(ctx context.Context, categoryID string) ([]model.Product, error) {
	query := productSelect
	args := []any{}
	if categoryID != "" {
		query += ` WHERE p.category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY c.sort_order, p.sort_order, p.title`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return scanProduct(r.pool.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
}

// SlugExists reports whether slug is taken by a product other than excludeID.
func (r *ProductRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id::text != $2)`,
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO products (id, slug, title, category_id, size, description, pdf_url, sort_order, in_stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		p.ID, p.Slug, p.Title, p.CategoryID, p.Size, p.Description, p.PDFURL, p.SortOrder, p.InStock,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// Update writes the mutable fields of a product.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET slug = $1, title = $2, category_id = $3, size = $4, description = $5,
		     pdf_url = $6, sort_order = $7, in_stock = $8, updated_at = NOW()
		 WHERE id = $9`,
		p.Slug, p.Title, p.CategoryID, p.Size, p.Description, p.PDFURL, p.SortOrder, p.InStock, p.ID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
