package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/repository"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/storage"
	"github.com/rs/zerolog"
)

// Submission errors.
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidStatus      = errors.New("invalid submission status")
)

// ResumeUpload carries an applicant's resume file into the object store.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// SubmissionService handles the public contact and application forms plus
// the admin-side triage of submitted rows. Email notification is
// best-effort: a failed send is logged and never fails the request.
type SubmissionService struct {
	subs  *repository.SubmissionRepository
	users *repository.AdminUserRepository
	jobs  *repository.JobRepository
	store *storage.Client
	mail  Notifier
	log   zerolog.Logger
}

// Notifier is the outbound-email collaborator: given recipients and a
// submission, attempt delivery and tolerate failure.
type Notifier interface {
	NotifySubmission(ctx context.Context, to []string, sub *model.Submission) error
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	subs *repository.SubmissionRepository,
	users *repository.AdminUserRepository,
	jobs *repository.JobRepository,
	store *storage.Client,
	mail Notifier,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{subs: subs, users: users, jobs: jobs, store: store, mail: mail, log: log}
}

// SubmitContact records a contact-form entry and notifies opted-in admins.
func (s *SubmissionService) SubmitContact(ctx context.Context, req *model.ContactRequest) (*model.Submission, error) {
	sub := &model.Submission{
		ID:      uuid.New().String(),
		Type:    model.SubmissionContact,
		Status:  model.StatusNew,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: &req.Message,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, sub)
	return sub, nil
}

// SubmitApplication records a job application, storing the resume (when
// provided) in the object store under resumes/.
func (s *SubmissionService) SubmitApplication(ctx context.Context, req *model.ContactRequest, jobID string, resume *ResumeUpload) (*model.Submission, error) {
	sub := &model.Submission{
		ID:      uuid.New().String(),
		Type:    model.SubmissionApplication,
		Status:  model.StatusNew,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}
	if req.Message != "" {
		sub.Message = &req.Message
	}

	if jobID != "" {
		job, err := s.jobs.GetByID(ctx, jobID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrJobNotFound
			}
			return nil, err
		}
		sub.JobID = &job.ID
		sub.JobTitle = &job.Title
	}

	if resume != nil {
		key := fmt.Sprintf("resumes/%s-%s", sub.ID, path.Base(resume.FileName))
		disposition := fmt.Sprintf("attachment; filename=%q", path.Base(resume.FileName))
		if err := s.store.Put(ctx, key, resume.ContentType, disposition, resume.Body); err != nil {
			return nil, fmt.Errorf("store resume: %w", err)
		}
		sub.ResumeFileKey = &key
		sub.ResumeFileName = &resume.FileName
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.notify(ctx, sub)
	return sub, nil
}

func (s *SubmissionService) notify(ctx context.Context, sub *model.Submission) {
	recipients, err := s.users.NotificationRecipients(ctx, sub.Type)
	if err != nil {
		s.log.Error().Err(err).Str("submission_id", sub.ID).Msg("Failed to load notification recipients")
		return
	}
	if len(recipients) == 0 {
		return
	}
	if err := s.mail.NotifySubmission(ctx, recipients, sub); err != nil {
		s.log.Error().Err(err).Str("submission_id", sub.ID).Msg("Email notification failed")
	}
}

// List returns submissions for the admin inbox.
func (s *SubmissionService) List(ctx context.Context, t model.SubmissionType, status model.SubmissionStatus) ([]model.Submission, error) {
	return s.subs.List(ctx, t, status)
}

// Get retrieves one submission.
func (s *SubmissionService) Get(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// UpdateTriage changes status and/or notes on a submission.
func (s *SubmissionService) UpdateTriage(ctx context.Context, id string, req *model.UpdateSubmissionRequest) (*model.Submission, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := existing.Status
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *req.Status
	}
	notes := existing.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	if _, err := s.subs.UpdateTriage(ctx, id, status, notes); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a submission and its stored resume, if any. A failed
// blob delete is logged but does not fail the operation.
func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.subs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSubmissionNotFound
	}

	if existing.ResumeFileKey != nil {
		if err := s.store.Delete(ctx, *existing.ResumeFileKey); err != nil {
			s.log.Error().Err(err).Str("key", *existing.ResumeFileKey).Msg("Failed to delete resume blob")
		}
	}
	return nil
}
