package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/model"
)

const adminUserColumns = `id, email, name, password_hash, role, notify_contact, notify_applications, created_at, last_login`

// AdminUserRepository handles admin account data access.
type AdminUserRepository struct {
	pool *pgxpool.Pool
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(pool *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{pool: pool}
}

func scanAdminUser(row interface{ Scan(...any) error }) (*model.AdminUser, error) {
	u := &model.AdminUser{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.NotifyContact, &u.NotifyApplications, &u.CreatedAt, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves an admin user by ID.
func (r *AdminUserRepository) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return scanAdminUser(r.pool.QueryRow(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE id = $1`, id))
}

// GetByEmail retrieves an admin user by their unique email.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return scanAdminUser(r.pool.QueryRow(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE email = $1`, email))
}

// ListByRoles retrieves users whose role is in the given set, ordered by
// role then name. Password hashes are still scanned but handlers never
// serialize them (json:"-").
func (r *AdminUserRepository) ListByRoles(ctx context.Context, roles []model.Role) ([]model.AdminUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adminUserColumns+` FROM admin_users WHERE role = ANY($1) ORDER BY role, name`,
		roles,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.AdminUser{}
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// EmailExists reports whether email is taken by a user other than excludeID.
// Pass an empty excludeID when creating.
func (r *AdminUserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admin_users WHERE email = $1 AND id::text != $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new admin user.
func (r *AdminUserRepository) Create(ctx context.Context, u *model.AdminUser) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (id, email, name, password_hash, role, notify_contact, notify_applications)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.NotifyContact, u.NotifyApplications,
	).Scan(&u.CreatedAt)
}

// Update writes the mutable fields of an existing admin user.
func (r *AdminUserRepository) Update(ctx context.Context, u *model.AdminUser) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_users
		 SET email = $1, name = $2, password_hash = $3, role = $4,
		     notify_contact = $5, notify_applications = $6
		 WHERE id = $7`,
		u.Email, u.Name, u.PasswordHash, u.Role, u.NotifyContact, u.NotifyApplications, u.ID,
	)
	return err
}

// UpdatePasswordHash replaces only the stored credential.
func (r *AdminUserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET password_hash = $1 WHERE id = $2`, hash, id)
	return err
}

// UpdateLastLogin stamps a successful login.
func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admin_users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

// Delete removes an admin user. Session rows cascade via FK.
func (r *AdminUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// NotificationRecipients returns the emails of users who opted in to
// notifications for the given submission type.
func (r *AdminUserRepository) NotificationRecipients(ctx context.Context, t model.SubmissionType) ([]string, error) {
	column := "notify_contact"
	if t == model.SubmissionApplication {
		column = "notify_applications"
	}
	rows, err := r.pool.Query(ctx,
		`SELECT email FROM admin_users WHERE `+column+` = TRUE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
