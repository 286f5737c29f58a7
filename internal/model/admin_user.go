package model

import "time"

// AdminUser represents a CMS administrator account.
type AdminUser struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	PasswordHash       string     `json:"-"`
	Role               Role       `json:"role"`
	NotifyContact      bool       `json:"notify_contact"`
	NotifyApplications bool       `json:"notify_applications"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login"`
}

// LoginRequest is the payload for admin authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// ChangePasswordRequest is the payload for the self-service password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// CreateUserRequest is the payload for creating an admin user.
type CreateUserRequest struct {
	Email              string `json:"email" binding:"required,email,max=255"`
	Name               string `json:"name" binding:"required,min=2,max=255"`
	Password           string `json:"password" binding:"required,min=8,max=128"`
	Role               Role   `json:"role" binding:"required"`
	NotifyContact      bool   `json:"notify_contact"`
	NotifyApplications bool   `json:"notify_applications"`
}

// UpdateUserRequest is the payload for updating an admin user. Pointer
// fields distinguish "absent" from zero values so partial updates work.
type UpdateUserRequest struct {
	Email              *string `json:"email" binding:"omitempty,email,max=255"`
	Name               *string `json:"name" binding:"omitempty,min=2,max=255"`
	Password           *string `json:"password" binding:"omitempty,min=8,max=128"`
	Role               *Role   `json:"role"`
	NotifyContact      *bool   `json:"notify_contact"`
	NotifyApplications *bool   `json:"notify_applications"`
}
