package model

import "time"

// Job is an open position listed on the careers page.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Locations   string    `json:"locations"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobRequest is the payload for creating or updating a job posting.
type JobRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=255"`
	Locations   string  `json:"locations" binding:"required,max=255"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
}
