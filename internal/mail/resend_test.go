package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendClientSend(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewResendClient("re_test_key", srv.URL)
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 5, "jean@mail.com", []byte("pdf"))
	if err := client.Send(context.Background(), m); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if auth != "Bearer re_test_key" {
		t.Fatalf("authorization header: %q", auth)
	}
	if got.Subject != "Reçu ASSOCIATION MIM N°5" {
		t.Fatalf("subject: %q", got.Subject)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].Filename != "receipt_5.pdf" {
		t.Fatalf("attachments: %#v", got.Attachments)
	}
}

func TestResendClientUpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid from address", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewResendClient("re_test_key", srv.URL)
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 5, "jean@mail.com", []byte("pdf"))
	if err := client.Send(context.Background(), m); !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestResendClientNotConfigured(t *testing.T) {
	client := NewResendClient("", "https://api.resend.com")
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 5, "jean@mail.com", []byte("pdf"))
	if err := client.Send(context.Background(), m); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestResendClientPromotesBCCWhenNoRecipient(t *testing.T) {
	var got resendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewResendClient("re_test_key", srv.URL)
	m := NewReceiptMessage(testAddressing, "ASSOCIATION MIM", 9, "", []byte("pdf"))
	if err := client.Send(context.Background(), m); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(got.To) != 1 || got.To[0] != "archive@example.org" {
		t.Fatalf("archive address must become the direct recipient: %#v", got.To)
	}
}
