package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

const jobColumns = `id, title, locations, description, is_active, sort_order, created_at, updated_at`

// JobRepository handles job posting data access.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func scanJob(row interface{ Scan(...any) error }) (*model.Job, error) {
	j := &model.Job{}
	err := row.Scan(&j.ID, &j.Title, &j.Locations, &j.Description,
		&j.IsActive, &j.SortOrder, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// List retrieves job postings; activeOnly filters to open positions.
func (r *JobRepository) List(ctx context.Context, activeOnly bool) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order, title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// GetByID retrieves a job by ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	return scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// Create inserts a new job posting.
func (r *JobRepository) Create(ctx context.Context, j *model.Job) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, locations, description, is_active, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		j.ID, j.Title, j.Locations, j.Description, j.IsActive, j.SortOrder,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
}

// Update writes the mutable fields of a job posting.
func (r *JobRepository) Update(ctx context.Context, j *model.Job) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $1, locations = $2, description = $3, is_active = $4,
		     sort_order = $5, updated_at = NOW()
		 WHERE id = $6`,
		j.Title, j.Locations, j.Description, j.IsActive, j.SortOrder, j.ID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a job posting.
func (r *JobRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
