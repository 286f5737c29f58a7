package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository persists server-side sessions. A session row is the
// authority on revocation: a bearer token whose jti no longer resolves to
// a live row is rejected even when the token itself is unexpired.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session row.
func (r *SessionRepository) Create(ctx context.Context, userID, sessionID string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`,
		sessionID, userID, expiresAt,
	)
	return err
}

// IsValid reports whether a session row exists and has not expired.
// An expired row counts as invalid; correctness never depends on pruning.
func (r *SessionRepository) IsValid(ctx context.Context, sessionID string) (bool, error) {
	var valid bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1 AND expires_at > NOW())`,
		sessionID,
	).Scan(&valid)
	if err != nil {
		return false, err
	}
	return valid, nil
}

// Delete removes a session. Deleting a nonexistent session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// DeleteAllForUser removes every session of a user, invalidating all
// outstanding tokens immediately. Used on account deletion.
func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// DeleteAllForUserExcept removes every session of a user other than keep.
// Used on password change so the current login survives.
func (r *SessionRepository) DeleteAllForUserExcept(ctx context.Context, userID, keep string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM sessions WHERE user_id = $1 AND id != $2`, userID, keep)
	return err
}

// DeleteExpired prunes soft-expired rows opportunistically.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
