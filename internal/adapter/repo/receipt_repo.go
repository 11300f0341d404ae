package repo

import (
	"context"
	"time"

	"recus/internal/domain"
	"recus/internal/infra"
	"recus/internal/sqlinline"
)

// ReceiptRepositoryPG persists and reads receipt records.
type ReceiptRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewReceiptRepository creates a new receipt repo.
func NewReceiptRepository(sql infra.SQLExecutor) *ReceiptRepositoryPG {
	return &ReceiptRepositoryPG{sql: sql}
}

// Create inserts the write-once record of one issued receipt.
func (r *ReceiptRepositoryPG) Create(ctx context.Context, rec *domain.Receipt) error {
	var fileURL string
	if rec.FileURL != nil {
		fileURL = *rec.FileURL
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertReceipt,
		rec.Number, rec.Association, rec.Address, rec.AssociationObject,
		rec.Donor, rec.Amount, rec.Email, rec.DonationDate, string(rec.PaymentMethod),
		rec.Purpose, rec.SignerName, rec.SignerUID, nullable(fileURL),
	)
	return err
}

// GetByNumber returns the receipt with the given number, or
// domain.ErrNotFound.
func (r *ReceiptRepositoryPG) GetByNumber(ctx context.Context, number int64) (*domain.Receipt, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectReceiptByNumber, number)
	var rec domain.Receipt
	var email, fileURL *string
	var method string
	err := row.Scan(
		&rec.Number, &rec.Association, &rec.Address, &rec.AssociationObject,
		&rec.Donor, &rec.Amount, &email, &rec.DonationDate, &method,
		&rec.Purpose, &rec.SignerName, &rec.SignerUID, &fileURL, &rec.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if email != nil {
		rec.Email = *email
	}
	rec.PaymentMethod = domain.PaymentMethod(method)
	rec.FileURL = fileURL
	return &rec, nil
}

// ReceiptSummary is one row of the recent-receipts listing.
type ReceiptSummary struct {
	Number        int64
	Donor         string
	Amount        float64
	DonationDate  time.Time
	PaymentMethod domain.PaymentMethod
	SignerName    string
	FileURL       *string
	CreatedAt     time.Time
}

// ListRecent returns recent receipts, newest number first.
func (r *ReceiptRepositoryPG) ListRecent(ctx context.Context, limit int) ([]ReceiptSummary, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListReceipts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ReceiptSummary
	for rows.Next() {
		var s ReceiptSummary
		var method string
		if err := rows.Scan(&s.Number, &s.Donor, &s.Amount, &s.DonationDate, &method, &s.SignerName, &s.FileURL, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.PaymentMethod = domain.PaymentMethod(method)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
