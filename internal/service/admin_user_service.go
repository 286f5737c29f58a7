package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/repository"
)

// Admin user management errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidRole       = errors.New("invalid role")
	ErrForbiddenRole     = errors.New("target role outside actor's allowed set")
	ErrSelfDelete        = errors.New("cannot delete own account")
	ErrPasswordIncorrect = errors.New("current password is incorrect")
)

// AdminUserService enforces the role hierarchy over admin account CRUD.
// Every policy decision uses the acting user's role from verified token
// claims, never client-supplied input.
type AdminUserService struct {
	users    *repository.AdminUserRepository
	sessions SessionStore
}

// NewAdminUserService creates a new AdminUserService.
func NewAdminUserService(users *repository.AdminUserRepository, sessions SessionStore) *AdminUserService {
	return &AdminUserService{users: users, sessions: sessions}
}

// GetByEmail retrieves a user for login. Returns ErrUserNotFound when the
// email is unknown; callers map it to the same generic response as a bad
// password.
func (s *AdminUserService) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by id (gateway hydration, profile endpoint).
func (s *AdminUserService) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// RecordLogin stamps last_login after a successful authentication.
func (s *AdminUserService) RecordLogin(ctx context.Context, id string) error {
	return s.users.UpdateLastLogin(ctx, id)
}

// List returns the users the actor may see: those whose role is in the
// actor's allowed set.
func (s *AdminUserService) List(ctx context.Context, actor *Claims) ([]model.AdminUser, error) {
	return s.users.ListByRoles(ctx, actor.Role.AllowedRoles())
}

// Create adds a new admin account. The requested role must be in the
// actor's allowed set; granting superadmin therefore stays exclusive to
// superadmins.
func (s *AdminUserService) Create(ctx context.Context, actor *Claims, req *model.CreateUserRequest) (*model.AdminUser, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if !actor.Role.CanAdminister(req.Role) {
		return nil, ErrForbiddenRole
	}

	taken, err := s.users.EmailExists(ctx, req.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.AdminUser{
		ID:                 uuid.New().String(),
		Email:              req.Email,
		Name:               req.Name,
		PasswordHash:       hash,
		Role:               req.Role,
		NotifyContact:      req.NotifyContact,
		NotifyApplications: req.NotifyApplications,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update mutates an existing account under the role policy. Self-editing
// bypasses the rank comparison (so a user can always change their own
// record) but not the escalation check: any role change must stay inside
// the actor's allowed set.
func (s *AdminUserService) Update(ctx context.Context, actor *Claims, id string, req *model.UpdateUserRequest) (*model.AdminUser, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isSelf := actor.Subject == id
	if !isSelf && !actor.Role.CanAdminister(existing.Role) {
		return nil, ErrForbiddenRole
	}

	if req.Role != nil && *req.Role != existing.Role {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		if !actor.Role.CanAdminister(*req.Role) {
			return nil, ErrForbiddenRole
		}
		existing.Role = *req.Role
	}

	if req.Email != nil && *req.Email != existing.Email {
		taken, err := s.users.EmailExists(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		existing.Email = *req.Email
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		existing.PasswordHash = hash
	}
	if req.NotifyContact != nil {
		existing.NotifyContact = *req.NotifyContact
	}
	if req.NotifyApplications != nil {
		existing.NotifyApplications = *req.NotifyApplications
	}

	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes an account and all of its sessions, invalidating every
// outstanding token. Self-deletion is rejected; so is any target outside
// the actor's allowed set.
func (s *AdminUserService) Delete(ctx context.Context, actor *Claims, id string) error {
	if actor.Subject == id {
		return ErrSelfDelete
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Role.CanAdminister(existing.Role) {
		return ErrForbiddenRole
	}

	if err := s.sessions.DeleteAllForUser(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword is the self-service flow: verify the current password,
// store the new hash, and revoke every other session of the user (the
// current login survives).
func (s *AdminUserService) ChangePassword(ctx context.Context, actor *Claims, current, newPassword string) error {
	user, err := s.GetByID(ctx, actor.Subject)
	if err != nil {
		return err
	}

	if !VerifyPassword(current, user.PasswordHash) {
		return ErrPasswordIncorrect
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	if err := s.sessions.DeleteAllForUserExcept(ctx, user.ID, actor.ID); err != nil {
		return fmt.Errorf("revoke other sessions: %w", err)
	}
	return nil
}
