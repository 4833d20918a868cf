package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// SMSClient talks to the SMS gateway. With DryRun (or no API key) it
// only logs the message, which is the default for this deployment;
// actual delivery is an external integration point.
type SMSClient struct {
	APIKey string
	Sender string
	DryRun bool
	Logger *logrus.Logger
}

type sendSMSResponse struct {
	Success string `json:"success"`
}

func NewSMSClient(apiKey, sender string, dryRun bool, logger *logrus.Logger) *SMSClient {
	return &SMSClient{APIKey: apiKey, Sender: sender, DryRun: dryRun, Logger: logger}
}

func (c *SMSClient) SendCode(to, code string) error {
	text := fmt.Sprintf("Ihr Bestätigungscode: %s", code)

	if c.DryRun || c.APIKey == "" {
		c.Logger.WithFields(logrus.Fields{
			"to":     to,
			"sender": c.Sender,
		}).Info("smsgate dry-run, message not dispatched")
		return nil
	}

	form := url.Values{
		"to":   {to},
		"text": {text},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	req, err := http.NewRequest(http.MethodPost, "https://gateway.seven.io/api/sms", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.APIKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send sms request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var result sendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse sms response: %w", err)
	}
	if result.Success != "100" {
		return fmt.Errorf("smsgate returned status %s", result.Success)
	}
	return nil
}
