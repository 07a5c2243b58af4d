// Package messaging implements the outbound chat provider client and the
// best-effort media dispatcher built on top of it.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mcpfinanceiro/backend/internal/domain/tenant"
)

// maxResponseSize caps error payloads read back from the chat API (1MB)
const maxResponseSize = 1 << 20

// Captions for file attachments, fixed by the chat product.
const (
	captionPaymentLink = "Baixe aqui seu boleto"
)

// Message is one outbound chat message. FileURL attaches a document or video
// to the text.
type Message struct {
	Text    string
	To      string
	FileURL string
}

type sendMessageRequest struct {
	Body sendMessageBody `json:"body"`
	From string          `json:"from"`
	To   string          `json:"to"`
}

type sendMessageBody struct {
	Text    string `json:"text"`
	FileURL string `json:"fileUrl,omitempty"`
}

// ChatClient talks to the chat provider HTTP API. Credentials are passed per
// call: each tenant carries its own chat token and channel.
type ChatClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewChatClient creates a chat client for the given provider base URL.
func NewChatClient(baseURL string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendMessage delivers one message on behalf of the tenant identified by
// creds. The destination phone is reduced to digits before sending.
func (c *ChatClient) SendMessage(ctx context.Context, creds tenant.ChannelCredentials, msg Message) error {
	payload, err := json.Marshal(sendMessageRequest{
		Body: sendMessageBody{Text: msg.Text, FileURL: msg.FileURL},
		From: creds.Channel,
		To:   NormalizePhone(msg.To),
	})
	if err != nil {
		return fmt.Errorf("chat: failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/message/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("chat: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("chat: send failed: HTTP %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// NormalizePhone strips everything but digits from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
