package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account. Authorization is granted by the
// presence of an admins allow-list row, not by anything on the user itself.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser builds a user with a fresh identifier.
func NewUser(email, passwordHash string) *User {
	return &User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
