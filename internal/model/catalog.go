package model

import "time"

// Category groups products on the marketing site.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog entry (drilling fluid products, additives, etc).
type Product struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Size         *string   `json:"size"`
	Description  *string   `json:"description"`
	PDFURL       *string   `json:"pdf_url"`
	SortOrder    int       `json:"sort_order"`
	InStock      bool      `json:"in_stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=255"`
	Slug      string `json:"slug" binding:"required,min=2,max=255,slug"`
	SortOrder int    `json:"sort_order"`
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Slug        string  `json:"slug" binding:"required,min=2,max=255,slug"`
	Title       string  `json:"title" binding:"required,min=2,max=255"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Size        *string `json:"size"`
	Description *string `json:"description"`
	PDFURL      *string `json:"pdf_url"`
	SortOrder   int     `json:"sort_order"`
	InStock     bool    `json:"in_stock"`
}
