package repo

import (
	"context"

	"recus/internal/infra"
	"recus/internal/sqlinline"
)

// AdminRepositoryPG checks and maintains the admins allow-list.
type AdminRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewAdminRepository(sql infra.SQLExecutor) *AdminRepositoryPG {
	return &AdminRepositoryPG{sql: sql}
}

// Exists reports whether the identity is present in the allow-list. Callers
// must treat a returned error as denial.
func (r *AdminRepositoryPG) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	if err := r.sql.QueryRow(ctx, sqlinline.QAdminExists, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Grant adds the identity to the allow-list. Idempotent.
func (r *AdminRepositoryPG) Grant(ctx context.Context, userID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertAdmin, userID)
	return err
}

// Revoke removes the identity from the allow-list.
func (r *AdminRepositoryPG) Revoke(ctx context.Context, userID string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QDeleteAdmin, userID)
	return err
}
