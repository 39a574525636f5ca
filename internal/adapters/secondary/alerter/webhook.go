package alerter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client отправляет алерты во входящий вебхук (формат Slack/Mattermost)
type Client struct {
	webhookURL string
	channel    string
	HTTPClient *http.Client
	log        *slog.Logger
}

type webhookMessage struct {
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// NewClient nil при пустом адресе вебхука
func NewClient(cfg *Config, log *slog.Logger) *Client {
	if cfg == nil || cfg.WebhookURL == "" {
		return nil
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		webhookURL: cfg.WebhookURL,
		channel:    cfg.Channel,
		HTTPClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) SendAlert(ctx context.Context, message string) error {
	if c == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	body, err := json.Marshal(webhookMessage{Text: message, Channel: c.channel})
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("failed to send alert", "error", err)
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("alert webhook rejected message", "status_code", resp.StatusCode)
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}

	c.log.Debug("alert sent successfully", "channel", c.channel)
	return nil
}
