package model

import "time"

// SubmissionType distinguishes contact-form entries from job applications.
type SubmissionType string

const (
	SubmissionContact     SubmissionType = "contact"
	SubmissionApplication SubmissionType = "application"
)

// SubmissionStatus tracks triage state in the admin inbox.
type SubmissionStatus string

const (
	StatusNew      SubmissionStatus = "new"
	StatusRead     SubmissionStatus = "read"
	StatusArchived SubmissionStatus = "archived"
)

// Valid reports whether s is a known triage status.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusArchived:
		return true
	}
	return false
}

// Submission is a row written by the public contact and application forms.
type Submission struct {
	ID             string           `json:"id"`
	Type           SubmissionType   `json:"type"`
	Status         SubmissionStatus `json:"status"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          *string          `json:"phone"`
	Company        *string          `json:"company"`
	Message        *string          `json:"message"`
	JobID          *string          `json:"job_id"`
	JobTitle       *string          `json:"job_title,omitempty"`
	ResumeFileKey  *string          `json:"resume_file_key"`
	ResumeFileName *string          `json:"resume_file_name"`
	Notes          *string          `json:"notes"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Email   string  `json:"email" binding:"required,email,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Company *string `json:"company" binding:"omitempty,max=255"`
	Message string  `json:"message" binding:"required,max=10000"`
}

// UpdateSubmissionRequest lets admins change triage status and notes.
type UpdateSubmissionRequest struct {
	Status *SubmissionStatus `json:"status"`
	Notes  *string           `json:"notes" binding:"omitempty,max=10000"`
}
