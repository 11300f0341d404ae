package repo

import (
	"context"
	"time"

	"recus/internal/auth"
	"recus/internal/domain"
	"recus/internal/infra"
	"recus/internal/sqlinline"
)

// UserRepositoryPG persists accounts and password-reset tokens.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// CreateUser inserts a new account.
func (r *UserRepositoryPG) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUser, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	return err
}

// GetUserByEmail returns the account for a normalized email, or
// domain.ErrNotFound.
func (r *UserRepositoryPG) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByEmail, domain.NormalizeEmail(email)))
}

// GetUserByID returns the account with the given identifier, or
// domain.ErrNotFound.
func (r *UserRepositoryPG) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

func (r *UserRepositoryPG) scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreatePasswordReset stores a single-use reset token.
func (r *UserRepositoryPG) CreatePasswordReset(ctx context.Context, token, userID string, expiresAt time.Time) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPasswordReset, token, userID, expiresAt)
	return err
}

// ConsumePasswordReset validates a token and marks it used, returning the
// account it belongs to.
func (r *UserRepositoryPG) ConsumePasswordReset(ctx context.Context, token string) (string, error) {
	var userID string
	var expiresAt time.Time
	var used bool
	err := r.sql.QueryRow(ctx, sqlinline.QSelectPasswordReset, token).Scan(&userID, &expiresAt, &used)
	if err != nil {
		if infra.IsNoRows(err) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if used || time.Now().After(expiresAt) {
		return "", domain.ErrNotFound
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QMarkPasswordResetUsed, token); err != nil {
		return "", err
	}
	return userID, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepositoryPG) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QUpdateUserPassword, userID, passwordHash)
	return err
}

var _ auth.UserStore = (*UserRepositoryPG)(nil)
