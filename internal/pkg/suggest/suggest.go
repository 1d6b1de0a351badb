// Package suggest calls the message-suggestion webhook used by the
// create-link form. Failures never surface to the user, the fixed
// fallback message is substituted instead.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ramoneds/linkwhats/internal/pkg/env"
)

// FallbackMessage is returned whenever the generator webhook fails.
const FallbackMessage = "Olá! Obrigado por entrar em contato. Como posso ajudar você hoje?"

type Client struct {
	WebhookURL string
	HTTPClient *http.Client
}

type request struct {
	Description string `json:"description"`
}

type response struct {
	Message string `json:"message"`
}

func NewClientFromEnv() *Client {
	return &Client{
		WebhookURL: strings.TrimSpace(env.GetEnv("SUGGEST_WEBHOOK_URL", "")),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GenerateMessage asks the webhook for a suggested chat message based on
// a free-text description. Every failure path returns FallbackMessage.
func (c *Client) GenerateMessage(ctx context.Context, description string) string {
	msg, err := c.generate(ctx, description)
	if err != nil {
		log.Printf("suggest: falling back to default message: %v", err)
		return FallbackMessage
	}
	return msg
}

func (c *Client) generate(ctx context.Context, description string) (string, error) {
	if c.WebhookURL == "" {
		return "", fmt.Errorf("SUGGEST_WEBHOOK_URL is not configured")
	}

	body, err := json.Marshal(request{Description: description})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call suggestion webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggestion webhook returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode suggestion response: %w", err)
	}

	if strings.TrimSpace(out.Message) == "" {
		return "", fmt.Errorf("suggestion webhook returned an empty message")
	}

	return out.Message, nil
}
