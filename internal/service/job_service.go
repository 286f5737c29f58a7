package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/repository"
)

// ErrJobNotFound is returned when the referenced job posting does not exist.
var ErrJobNotFound = errors.New("job not found")

// JobService covers career-page job posting CRUD.
type JobService struct {
	jobs *repository.JobRepository
}

// NewJobService creates a new JobService.
func NewJobService(jobs *repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

// List returns job postings; activeOnly filters to open positions.
func (s *JobService) List(ctx context.Context, activeOnly bool) ([]model.Job, error) {
	return s.jobs.List(ctx, activeOnly)
}

// Get retrieves one job posting.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return j, nil
}

// Create inserts a job posting.
func (s *JobService) Create(ctx context.Context, req *model.JobRequest) (*model.Job, error) {
	j := &model.Job{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Locations:   req.Locations,
		Description: req.Description,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// Update writes job posting fields.
func (s *JobService) Update(ctx context.Context, id string, req *model.JobRequest) (*model.Job, error) {
	j := &model.Job{
		ID:          id,
		Title:       req.Title,
		Locations:   req.Locations,
		Description: req.Description,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
	updated, err := s.jobs.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrJobNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a job posting.
func (s *JobService) Delete(ctx context.Context, id string) error {
	deleted, err := s.jobs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrJobNotFound
	}
	return nil
}
