package mail

import (
	"encoding/base64"
	"strings"
	"testing"
)

var testAddressing = Addressing{
	From:       "Association MIM <no.reply@example.org>",
	ReplyTo:    "no.reply@example.org",
	ArchiveBCC: "archive@example.org",
}

func TestNewReceiptMessage(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 12, "jean@mail.com", pdf)

	if m.Subject != "Reçu ASSOCIATION MIM N°12" {
		t.Fatalf("subject mismatch: %q", m.Subject)
	}
	if len(m.To) != 1 || m.To[0] != "jean@mail.com" {
		t.Fatalf("to mismatch: %#v", m.To)
	}
	if len(m.BCC) != 1 || m.BCC[0] != "archive@example.org" {
		t.Fatalf("bcc mismatch: %#v", m.BCC)
	}
	if m.Status != StatusPending {
		t.Fatalf("status mismatch: %q", m.Status)
	}
	if len(m.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(m.Attachments))
	}
	att := m.Attachments[0]
	if att.Filename != "receipt_12.pdf" {
		t.Fatalf("attachment filename: %q", att.Filename)
	}
	decoded, err := base64.StdEncoding.DecodeString(att.Content)
	if err != nil {
		t.Fatalf("attachment is not valid base64: %v", err)
	}
	if string(decoded) != string(pdf) {
		t.Fatal("attachment content does not round-trip")
	}
	if !strings.Contains(m.Text, "pièce jointe") || !strings.Contains(m.HTML, "<p>") {
		t.Fatal("bodies missing expected content")
	}
}

func TestNewReceiptMessageWithoutDonorEmail(t *testing.T) {
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 3, "  ", []byte("x"))
	if m.To == nil {
		t.Fatal("recipient list must be empty, not nil")
	}
	if len(m.To) != 0 {
		t.Fatalf("expected no direct recipient, got %#v", m.To)
	}
	if len(m.BCC) != 1 {
		t.Fatal("archive copy must always be addressed")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("  jean DUPONT "); got != "Jean Dupont" {
		t.Fatalf("DisplayName: %q", got)
	}
}

func TestSignatureKeepsAcronym(t *testing.T) {
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 1, "jean@mail.com", []byte("x"))
	if !strings.Contains(m.Text, "L’équipe de l’Association MIM") {
		t.Fatalf("text signature mangled: %q", m.Text)
	}
	if !strings.Contains(m.HTML, "L’équipe de l’Association MIM") {
		t.Fatalf("html signature mangled: %q", m.HTML)
	}
	if strings.Contains(m.Text, "Mim") {
		t.Fatal("acronym must keep its configured casing")
	}
}
