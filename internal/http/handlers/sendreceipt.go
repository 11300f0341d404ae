package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"recus/internal/domain"
	"recus/internal/mail"
)

type sendReceiptRequest struct {
	DonorEmail      string `json:"donorEmail"`
	DonorName       string `json:"donorName"`
	Amount          any    `json:"amount"`
	DateISO         string `json:"dateISO"`
	AssociationName string `json:"associationName"`
}

// amountValue coerces the loosely typed amount field, which callers send as
// either a number or a numeric string.
func amountValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// SendReceipt delivers a simple HTML confirmation directly through the mail
// provider, without touching the counter, the archive or the outbox. The
// donor name is optional; everything else is required.
func (a *App) SendReceipt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.error(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed")
		return
	}

	var req sendReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	amount, ok := amountValue(req.Amount)
	if req.DonorEmail == "" || req.DateISO == "" || req.AssociationName == "" || !ok || amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required fields")
		return
	}

	date, err := time.Parse("2006-01-02", req.DateISO)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.DateISO); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "Missing required fields")
			return
		}
	}

	if !a.Sender.Configured() {
		a.error(w, http.StatusInternalServerError, "internal", "Email provider not configured")
		return
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif">`+
		`<h2>Reçu de don – %s</h2>`+
		`<p>Bonjour %s,</p>`+
		`<p>Nous confirmons la réception de votre don :</p>`+
		`<ul>`+
		`<li>Montant : <strong>%.2f €</strong></li>`+
		`<li>Date : <strong>%s</strong></li>`+
		`<li>Bénéficiaire : <strong>%s</strong></li>`+
		`</ul>`+
		`<p>Merci pour votre soutien.</p>`+
		`</div>`,
		req.AssociationName, mail.DisplayName(req.DonorName), amount,
		domain.FormatDateFR(date), req.AssociationName)

	msg := mail.Message{
		ID:      uuid.NewString(),
		To:      []string{req.DonorEmail},
		From:    a.Cfg.MailFrom,
		ReplyTo: a.Cfg.MailReplyTo,
		Subject: fmt.Sprintf("Votre reçu de don – %s", req.AssociationName),
		HTML:    html,
	}

	if err := a.Sender.Send(r.Context(), msg); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			a.error(w, http.StatusInternalServerError, "internal", "Email provider not configured")
			return
		}
		a.Logger.Error().Err(err).Msg("send receipt mail failed")
		a.error(w, http.StatusBadGateway, "bad_gateway", "Email send failed")
		return
	}

	a.json(w, http.StatusOK, map[string]bool{"ok": true})
}
