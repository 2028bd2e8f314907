package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WebhookNotifier POSTs notifications as JSON to a configured endpoint.
type WebhookNotifier struct {
	url     *url.URL
	timeout time.Duration
}

func NewWebhookNotifier(rawUrl string, timeout time.Duration) (*WebhookNotifier, error) {
	u, err := url.ParseRequestURI(rawUrl)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}
	return &WebhookNotifier{url: u, timeout: timeout}, nil
}

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	content, err := json.Marshal(n)
	if err != nil {
		return err
	}

	client := http.Client{
		Timeout: w.timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.url.String(), bytes.NewBuffer(content))
	if err != nil {
		return fmt.Errorf("error while creating webhook request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error while sending webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook endpoint responded with an unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
