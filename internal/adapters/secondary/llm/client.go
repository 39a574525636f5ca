package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

const createMessage = "messages"

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client клиент Anthropic Messages API
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.timeout(),
		},
		Log: log,
	}
}

// buildURL собирает полный URL из BaseURL, ApiVersion и endpoint
func (c *Client) buildURL(endpoint string) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return baseURL + "/" + path.Join(c.cfg.ApiVersion, endpoint)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-version", c.cfg.AnthropicVersion)
	if c.cfg.ApiKey != "" {
		req.Header.Set("x-api-key", c.cfg.ApiKey)
	}
}

// CreateMessage один вызов модели без стриминга
func (c *Client) CreateMessage(ctx context.Context, req MessagesRequest) (*MessagesResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(createMessage), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(httpReq)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("llm API error [status=%d, type=%s]: %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
		}
		c.Log.Debug("llm API returned non-200 status",
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("llm API error [status=%d]: %s", resp.StatusCode, truncateString(string(body), 500))
	}

	var msgResp MessagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		c.Log.Debug("failed to unmarshal llm API response",
			"error", err,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("llm API unmarshal failed: %w", err)
	}

	return &msgResp, nil
}
