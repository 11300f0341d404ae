package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"recus/internal/domain"
	"recus/internal/mail"
	"recus/internal/pdf"
)

type receiptRequest struct {
	Donor         string `json:"donor"`
	Amount        string `json:"amount"`
	Email         string `json:"email"`
	DonationDate  string `json:"donation_date"`
	PaymentMethod string `json:"payment_method"`
	Signer        string `json:"signer"`
}

type receiptResponse struct {
	Number  int64   `json:"number"`
	FileURL *string `json:"file_url"`
	MailID  string  `json:"mail_id"`
}

// ReceiptsCreate runs the full issuance pipeline: validate, resolve the
// signatory, take the next number, render the PDF, archive it, record the
// receipt and queue the donor notification. Archival and the receipt record
// are best effort; a failed outbox insert aborts with an error even though
// the number stays consumed.
func (a *App) ReceiptsCreate(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	donation, err := domain.ParseSubmission(domain.Submission{
		Donor:         req.Donor,
		Amount:        req.Amount,
		Email:         req.Email,
		DonationDate:  req.DonationDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	userID := a.currentUserID(r)
	signer := domain.ResolveSigner(a.currentUserEmail(r), req.Signer)

	number, err := a.Counter.Next(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("receipt numbering failed")
		a.error(w, http.StatusInternalServerError, "internal", "Impossible d'attribuer un numéro de reçu.")
		return
	}

	pdfBytes, err := pdf.Render(pdf.ReceiptData{
		AssociationName:    a.Cfg.AssociationName,
		AssociationAddress: a.Cfg.AssociationAddress,
		AssociationObject:  a.Cfg.AssociationObject,
		Number:             number,
		Donor:              donation.Donor,
		Amount:             donation.Amount,
		DonationDate:       donation.DonationDate,
		PaymentMethod:      donation.PaymentMethod,
		Purpose:            a.Cfg.DonationPurpose,
		Signer:             signer,
	})
	if err != nil {
		a.Logger.Error().Err(err).Int64("number", number).Msg("pdf render failed")
		a.error(w, http.StatusInternalServerError, "internal", "La génération du PDF a échoué.")
		return
	}

	// Archival never blocks issuance: the receipt exists as soon as it has
	// a number and a queued notification.
	var fileURL *string
	key := fmt.Sprintf("receipts/receipt_%d.pdf", number)
	if url, err := a.Store.Upload(r.Context(), key, pdfBytes, "application/pdf"); err != nil {
		a.Logger.Error().Err(err).Str("key", key).Msg("receipt archival failed")
	} else {
		fileURL = &url
	}

	rec := &domain.Receipt{
		Number:            number,
		Association:       a.Cfg.AssociationName,
		Address:           a.Cfg.AssociationAddress,
		AssociationObject: a.Cfg.AssociationObject,
		Donor:             donation.Donor,
		Amount:            donation.Amount,
		Email:             donation.Email,
		DonationDate:      donation.DonationDate,
		PaymentMethod:     donation.PaymentMethod,
		Purpose:           a.Cfg.DonationPurpose,
		SignerName:        signer,
		SignerUID:         userID,
		FileURL:           fileURL,
		CreatedAt:         time.Now().UTC(),
	}
	if err := a.Receipts.Create(r.Context(), rec); err != nil {
		a.Logger.Error().Err(err).Int64("number", number).Msg("receipt record failed")
	}

	if a.Cfg.MailEnqueueDelay > 0 {
		select {
		case <-r.Context().Done():
		case <-time.After(a.Cfg.MailEnqueueDelay):
		}
	}

	msg := mail.NewReceiptMessage(mail.Addressing{
		From:       a.Cfg.MailFrom,
		ReplyTo:    a.Cfg.MailReplyTo,
		ArchiveBCC: a.Cfg.MailArchiveBCC,
	}, a.Cfg.AssociationName, number, donation.Email, pdfBytes)
	if err := a.Outbox.Enqueue(r.Context(), msg); err != nil {
		a.Logger.Error().Err(err).Int64("number", number).Msg("outbox enqueue failed")
		a.error(w, http.StatusInternalServerError, "internal", "L'envoi du reçu a échoué.")
		return
	}

	a.json(w, http.StatusCreated, receiptResponse{Number: number, FileURL: fileURL, MailID: msg.ID})
}

func (a *App) ReceiptsGet(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil || number <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid receipt number")
		return
	}

	rec, err := a.Receipts.GetByNumber(r.Context(), number)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "receipt not found")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"number":         rec.Number,
		"association":    rec.Association,
		"donor":          rec.Donor,
		"amount":         rec.Amount,
		"email":          rec.Email,
		"donation_date":  rec.DonationDate.Format("2006-01-02"),
		"payment_method": string(rec.PaymentMethod),
		"purpose":        rec.Purpose,
		"signer":         rec.SignerName,
		"file_url":       rec.FileURL,
		"created_at":     rec.CreatedAt,
	})
}

func (a *App) ReceiptsList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	summaries, err := a.Receipts.ListRecent(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list receipts failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load receipts")
		return
	}

	items := make([]map[string]any, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, map[string]any{
			"number":        s.Number,
			"donor":         s.Donor,
			"amount":        s.Amount,
			"donation_date": s.DonationDate.Format("2006-01-02"),
			"signer":        s.SignerName,
			"file_url":      s.FileURL,
			"created_at":    s.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
