package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"recus/internal/mail"
	"recus/internal/sqlinline"
)

type capturingSQL struct {
	query string
	args  []any
}

func (c *capturingSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	c.query = query
	c.args = args
	return pgconn.CommandTag{}, nil
}

func (c *capturingSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{fmt.Errorf("unexpected QueryRow")}
}

func (c *capturingSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected Query")
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestOutboxEnqueue_EmptyRecipientsEncodeAsEmptyArrays(t *testing.T) {
	sql := &capturingSQL{}
	outbox := NewOutboxRepository(sql)

	// An issuance without a donor email queues a message whose To list is
	// empty; the address columns must still receive arrays, not NULL.
	msg := mail.Message{
		ID:      "mail-1",
		From:    "Association <no.reply@test.fr>",
		Subject: "Reçu ASSOCIATION MIM N°1",
		Status:  mail.StatusPending,
	}
	if err := outbox.Enqueue(context.Background(), msg); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if sql.query != sqlinline.QInsertMail {
		t.Fatalf("unexpected query: %s", sql.query)
	}
	if len(sql.args) != 10 {
		t.Fatalf("unexpected args count: %d", len(sql.args))
	}

	to, ok := sql.args[1].([]string)
	if !ok || to == nil {
		t.Fatalf("to_addrs arg must be a non-nil []string, got %#v", sql.args[1])
	}
	if len(to) != 0 {
		t.Fatalf("to_addrs: got %v, want empty", to)
	}

	bcc, ok := sql.args[2].([]string)
	if !ok || bcc == nil {
		t.Fatalf("bcc_addrs arg must be a non-nil []string, got %#v", sql.args[2])
	}
	if len(bcc) != 0 {
		t.Fatalf("bcc_addrs: got %v, want empty", bcc)
	}
}
