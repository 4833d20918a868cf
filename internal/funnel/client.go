package funnel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// VerifyPhoneResult is the body of a handled /verify-phone call.
// A business refusal arrives as Success=false with a message; transport
// problems surface as Go errors instead.
type VerifyPhoneResult struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	AttemptsLeft *int   `json:"attemptsLeft,omitempty"`
}

type verifyPhoneRequest struct {
	Phone  string `json:"phone"`
	Action string `json:"action"`
	Code   string `json:"code,omitempty"`
}

// Client calls the verification endpoint with the site's static
// bearer credential.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{},
	}
}

func (c *Client) SendCode(ctx context.Context, phone string) (*VerifyPhoneResult, error) {
	return c.post(ctx, verifyPhoneRequest{Phone: phone, Action: "send"})
}

func (c *Client) VerifyCode(ctx context.Context, phone, code string) (*VerifyPhoneResult, error) {
	return c.post(ctx, verifyPhoneRequest{Phone: phone, Action: "verify", Code: code})
}

func (c *Client) post(ctx context.Context, body verifyPhoneRequest) (*VerifyPhoneResult, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/verify-phone", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify-phone request: %w", err)
	}
	defer resp.Body.Close()

	// handled business outcomes come back as 2xx; anything else is an
	// infrastructure failure
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("verify-phone returned status %d", resp.StatusCode)
	}

	var result VerifyPhoneResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// default cap on a single verification call
const requestTimeout = 30 * time.Second
