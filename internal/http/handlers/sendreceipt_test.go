package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"recus/internal/mail"
)

func sendReceiptApp(sender *fakeSender) *App {
	return &App{Cfg: testConfig(), Logger: zerolog.Nop(), Sender: sender}
}

func TestSendReceipt_MethodNotAllowed(t *testing.T) {
	app := sendReceiptApp(&fakeSender{configured: true})

	rr := httptest.NewRecorder()
	app.SendReceipt(rr, httptest.NewRequest("GET", "/v1/send-receipt", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rr.Code)
	}
}

func TestSendReceipt_MissingFields(t *testing.T) {
	app := sendReceiptApp(&fakeSender{configured: true})

	cases := []struct {
		name string
		body string
	}{
		{"no email", `{"amount":50,"dateISO":"2024-01-15","associationName":"ASSOCIATION MIM"}`},
		{"no amount", `{"donorEmail":"jean@test.fr","dateISO":"2024-01-15","associationName":"ASSOCIATION MIM"}`},
		{"no date", `{"donorEmail":"jean@test.fr","amount":50,"associationName":"ASSOCIATION MIM"}`},
		{"no association", `{"donorEmail":"jean@test.fr","amount":50,"dateISO":"2024-01-15"}`},
		{"bad date", `{"donorEmail":"jean@test.fr","amount":50,"dateISO":"15/01/2024","associationName":"ASSOCIATION MIM"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			app.SendReceipt(rr, httptest.NewRequest("POST", "/v1/send-receipt", strings.NewReader(tc.body)))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
		})
	}
}

func TestSendReceipt_ProviderNotConfigured(t *testing.T) {
	app := sendReceiptApp(&fakeSender{configured: false})

	body := `{"donorEmail":"jean@test.fr","amount":50,"dateISO":"2024-01-15","associationName":"ASSOCIATION MIM"}`
	rr := httptest.NewRecorder()
	app.SendReceipt(rr, httptest.NewRequest("POST", "/v1/send-receipt", strings.NewReader(body)))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
}

func TestSendReceipt_UpstreamRejection(t *testing.T) {
	app := sendReceiptApp(&fakeSender{configured: true, err: mail.ErrRejected})

	body := `{"donorEmail":"jean@test.fr","amount":50,"dateISO":"2024-01-15","associationName":"ASSOCIATION MIM"}`
	rr := httptest.NewRecorder()
	app.SendReceipt(rr, httptest.NewRequest("POST", "/v1/send-receipt", strings.NewReader(body)))

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rr.Code)
	}
}

func TestSendReceipt_Success(t *testing.T) {
	sender := &fakeSender{configured: true}
	app := sendReceiptApp(sender)

	body := `{"donorEmail":"jean@test.fr","donorName":"jean dupont","amount":50,"dateISO":"2024-01-15","associationName":"ASSOCIATION MIM"}`
	rr := httptest.NewRecorder()
	app.SendReceipt(rr, httptest.NewRequest("POST", "/v1/send-receipt", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"ok":true}` {
		t.Fatalf("body: got %s", got)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 sent mail, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "jean@test.fr" {
		t.Fatalf("recipients: got %v", msg.To)
	}
	if msg.Subject != "Votre reçu de don – ASSOCIATION MIM" {
		t.Fatalf("subject: got %q", msg.Subject)
	}
	for _, want := range []string{"50.00 €", "15/01/2024", "Jean Dupont"} {
		if !strings.Contains(msg.HTML, want) {
			t.Fatalf("html missing %q: %s", want, msg.HTML)
		}
	}
}

func TestSendReceipt_AcceptsStringAmount(t *testing.T) {
	sender := &fakeSender{configured: true}
	app := sendReceiptApp(sender)

	body := `{"donorEmail":"jean@test.fr","amount":"25.5","dateISO":"2024-01-15","associationName":"ASSOCIATION MIM"}`
	rr := httptest.NewRecorder()
	app.SendReceipt(rr, httptest.NewRequest("POST", "/v1/send-receipt", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(sender.sent[0].HTML, "25.50 €") {
		t.Fatalf("html missing formatted amount: %s", sender.sent[0].HTML)
	}
}
