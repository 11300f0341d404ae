package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is returned when no API key is available.
	ErrNotConfigured = errors.New("mail: email provider not configured")
	// ErrRejected is returned when the upstream API refuses the request.
	ErrRejected = errors.New("mail: email send rejected")
)

// ResendClient dispatches emails through the Resend HTTP API using bearer
// token authorization.
type ResendClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewResendClient(apiKey, baseURL string) *ResendClient {
	return &ResendClient{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an API key is set.
func (c *ResendClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	Bcc         []string           `json:"bcc,omitempty"`
	ReplyTo     string             `json:"reply_to,omitempty"`
	Subject     string             `json:"subject"`
	Text        string             `json:"text,omitempty"`
	HTML        string             `json:"html,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// Send delivers one message. The attachment content is the base64 text
// stored on the outbox entry, passed through unchanged.
func (c *ResendClient) Send(ctx context.Context, m Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if len(m.To) == 0 && len(m.BCC) == 0 {
		return fmt.Errorf("mail: message %s has no recipients", m.ID)
	}

	payload := resendPayload{
		From:    m.From,
		To:      m.To,
		Bcc:     m.BCC,
		ReplyTo: m.ReplyTo,
		Subject: m.Subject,
		Text:    m.Text,
		HTML:    m.HTML,
	}
	// Resend requires at least one direct recipient.
	if len(payload.To) == 0 {
		payload.To = m.BCC
		payload.Bcc = nil
	}
	for _, a := range m.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mail: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
