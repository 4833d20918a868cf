package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookClient forwards accepted leads to the CRM intake webhook.
// Success is inferred purely from the HTTP status.
type WebhookClient struct {
	URL       string
	AuthToken string
	client    *http.Client
}

func NewWebhookClient(url, authToken string) *WebhookClient {
	return &WebhookClient{
		URL:       url,
		AuthToken: authToken,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (w *WebhookClient) Forward(payload any) error {
	if w.URL == "" {
		return fmt.Errorf("webhook url not configured")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.URL, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+w.AuthToken)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
