package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"recus/internal/infra"
	"recus/internal/sqlinline"
)

const (
	ProviderResend = "resend"
)

// Store reads and writes third-party API credentials persisted in the
// integration_tokens table. The worker falls back to it when the key is not
// provided through the environment.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

func (s *Store) ResendAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderResend)
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func (s *Store) SetResendAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("resend api key is required")
	}
	return s.upsert(ctx, ProviderResend, key, nil)
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
