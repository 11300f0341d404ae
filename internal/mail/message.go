// Package mail builds outbox entries and delivers them through the Resend
// transactional email API. The issuance flow only enqueues: the delivery
// guarantee ends at "entry durably queued".
package mail

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Statuses of an outbox entry. The relay moves PENDING entries to SENT or
// ERROR; nothing ever moves back.
const (
	StatusPending = "PENDING"
	StatusSending = "SENDING"
	StatusSent    = "SENT"
	StatusError   = "ERROR"
)

// Attachment carries one base64-encoded file of an outbox entry.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Message is one queued email-send request.
type Message struct {
	ID          string
	To          []string
	BCC         []string
	From        string
	ReplyTo     string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
	Status      string
	LastError   string
	CreatedAt   time.Time
}

// Addressing is the fixed sender configuration applied to every message.
type Addressing struct {
	From       string
	ReplyTo    string
	ArchiveBCC string
}

// NewReceiptMessage builds the donor notification for an issued receipt.
// The donor email may be empty; the archive copy is always addressed.
func NewReceiptMessage(addr Addressing, associationName string, number int64, donorEmail string, pdfBytes []byte) Message {
	filename := fmt.Sprintf("receipt_%d.pdf", number)

	// Non-nil even when empty: the outbox columns reject SQL NULL.
	to := []string{}
	if e := strings.TrimSpace(donorEmail); e != "" {
		to = append(to, e)
	}

	text := "As-salāmu ‘alaykum wa rahmatullāh,\n\n" +
		"Qu’Allāh accepte votre don et vous récompense pour votre générosité.\n" +
		"Veuillez trouver en pièce jointe le reçu correspondant à votre contribution.\n\n" +
		"BarakAllāhu fīkum,\nL’équipe de l’" + signatureName(associationName)

	html := "<p><strong>As-salāmu ‘alaykum wa rahmatullāh,</strong></p>" +
		"<p>Qu’Allāh accepte votre don et vous récompense pour votre générosité.</p>" +
		"<p>Veuillez trouver en pièce jointe le reçu correspondant à votre contribution.</p>" +
		"<p><em>BarakAllāhu fīkum,</em><br/>L’équipe de l’" + signatureName(associationName) + "</p>"

	return Message{
		ID:      uuid.NewString(),
		To:      to,
		BCC:     []string{addr.ArchiveBCC},
		From:    addr.From,
		ReplyTo: addr.ReplyTo,
		Subject: fmt.Sprintf("Reçu %s N°%d", associationName, number),
		Text:    text,
		HTML:    html,
		Attachments: []Attachment{{
			Filename: filename,
			Content:  base64.StdEncoding.EncodeToString(pdfBytes),
			Encoding: "base64",
		}},
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

var frTitleCaser = cases.Title(language.French)

// signatureName renders the association name for the fixed signature line:
// only the leading word is recased, the rest keeps its configured form so an
// acronym survives ("ASSOCIATION MIM" -> "Association MIM").
func signatureName(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	words[0] = frTitleCaser.String(strings.ToLower(words[0]))
	return strings.Join(words, " ")
}

// DisplayName normalizes a donor name for use in a greeting.
func DisplayName(name string) string {
	return frTitleCaser.String(strings.ToLower(strings.TrimSpace(name)))
}
