package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"recus/internal/infra"
	"recus/internal/mail"
	"recus/internal/sqlinline"
)

// OutboxRepositoryPG persists queued email-send requests and hands them to
// the relay worker.
type OutboxRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewOutboxRepository(sql infra.SQLExecutor) *OutboxRepositoryPG {
	return &OutboxRepositoryPG{sql: sql}
}

// Enqueue durably appends one message to the outbox.
func (r *OutboxRepositoryPG) Enqueue(ctx context.Context, m mail.Message) error {
	attachments, err := json.Marshal(m.Attachments)
	if err != nil {
		return fmt.Errorf("encode attachments: %w", err)
	}
	// Nil slices encode as SQL NULL; the address columns are NOT NULL and
	// an empty recipient list is a valid outbox entry.
	_, err = r.sql.Exec(ctx, sqlinline.QInsertMail,
		m.ID, addrList(m.To), addrList(m.BCC), m.From, m.ReplyTo, m.Subject, m.Text, m.HTML, attachments, m.Status,
	)
	return err
}

func addrList(addrs []string) []string {
	if addrs == nil {
		return []string{}
	}
	return addrs
}

// ClaimPending atomically claims the oldest pending entry for delivery.
// Returns (nil, nil) when the outbox is empty.
func (r *OutboxRepositoryPG) ClaimPending(ctx context.Context) (*mail.Message, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QClaimPendingMail)
	var m mail.Message
	var attachments []byte
	err := row.Scan(&m.ID, &m.To, &m.BCC, &m.From, &m.ReplyTo, &m.Subject, &m.Text, &m.HTML, &attachments)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &m.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments: %w", err)
		}
	}
	m.Status = mail.StatusSending
	return &m, nil
}

// MarkStatus records the delivery outcome of a claimed entry.
func (r *OutboxRepositoryPG) MarkStatus(ctx context.Context, id, status, lastError string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QMarkMailStatus, id, status, lastError)
	return err
}
