package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

const submissionSelect = `
	SELECT s.id, s.type, s.status, s.name, s.email, s.phone, s.company, s.message,
	       s.job_id, j.title, s.resume_file_key, s.resume_file_name, s.notes, s.created_at
	FROM submissions s LEFT JOIN jobs j ON s.job_id = j.id`

// SubmissionRepository handles form submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

func scanSubmission(row interface{ Scan(...any) error }) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(
		&s.ID, &s.Type, &s.Status, &s.Name, &s.Email, &s.Phone, &s.Company,
		&s.Message, &s.JobID, &s.JobTitle, &s.ResumeFileKey, &s.ResumeFileName,
		&s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves submissions newest first, optionally filtered by type
// and/or status (empty strings mean no filter).
func (r *SubmissionRepository) List(ctx context.Context, t model.SubmissionType, status model.SubmissionStatus) ([]model.Submission, error) {
	query := submissionSelect + ` WHERE ($1 = '' OR s.type = $1) AND ($2 = '' OR s.status = $2)
		ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query, string(t), string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	return subs, rows.Err()
}

// GetByID retrieves a submission by ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	return scanSubmission(r.pool.QueryRow(ctx, submissionSelect+` WHERE s.id = $1`, id))
}

// Create inserts a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions
		   (id, type, status, name, email, phone, company, message, job_id, resume_file_key, resume_file_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		s.ID, s.Type, s.Status, s.Name, s.Email, s.Phone, s.Company, s.Message,
		s.JobID, s.ResumeFileKey, s.ResumeFileName,
	).Scan(&s.CreatedAt)
}

// UpdateTriage writes the admin-mutable fields (status, notes).
func (r *SubmissionRepository) UpdateTriage(ctx context.Context, id string, status model.SubmissionStatus, notes *string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions SET status = $1, notes = $2 WHERE id = $3`,
		status, notes, id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a submission.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
