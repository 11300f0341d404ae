package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"recus/internal/adapter/repo"
	"recus/internal/auth"
	"recus/internal/domain"
	"recus/internal/infra"
	"recus/internal/mail"
	"recus/internal/middleware"
	"recus/internal/storage"
)

// ReceiptStore persists issued receipts and serves read access to them.
type ReceiptStore interface {
	Create(ctx context.Context, rec *domain.Receipt) error
	GetByNumber(ctx context.Context, number int64) (*domain.Receipt, error)
	ListRecent(ctx context.Context, limit int) ([]repo.ReceiptSummary, error)
}

// AdminDirectory answers membership checks against the admin allow-list.
type AdminDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// UserDirectory covers the account operations the auth handlers need beyond
// the authenticator itself.
type UserDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreatePasswordReset(ctx context.Context, token, userID string, expiresAt time.Time) error
	ConsumePasswordReset(ctx context.Context, token string) (string, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// OutboxQueue enqueues outbound mail for the relay worker.
type OutboxQueue interface {
	Enqueue(ctx context.Context, m mail.Message) error
}

// MailSender delivers a message synchronously, bypassing the outbox.
type MailSender interface {
	Configured() bool
	Send(ctx context.Context, m mail.Message) error
}

type App struct {
	Cfg    *infra.Config
	Logger infra.Logger

	Tokens *auth.JWTManager
	Auth   *auth.PasswordAuthenticator

	Users    UserDirectory
	Admins   AdminDirectory
	Counter  repo.CounterSource
	Receipts ReceiptStore
	Outbox   OutboxQueue
	Store    storage.ObjectStore
	Sender   MailSender
}

// NewApp wires the handler container over the Postgres repositories.
func NewApp(cfg *infra.Config, logger infra.Logger, sql infra.SQLExecutor, counter repo.CounterSource, store storage.ObjectStore, sender MailSender) *App {
	users := repo.NewUserRepository(sql)
	return &App{
		Cfg:      cfg,
		Logger:   logger,
		Tokens:   auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour),
		Auth:     auth.NewPasswordAuthenticator(users),
		Users:    users,
		Admins:   repo.NewAdminRepository(sql),
		Counter:  counter,
		Receipts: repo.NewReceiptRepository(sql),
		Outbox:   repo.NewOutboxRepository(sql),
		Store:    store,
		Sender:   sender,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]any{"error": slug, "message": message})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) currentUserEmail(r *http.Request) string {
	return middleware.UserEmailFromContext(r.Context())
}
