package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alutalk/channel/internal/biz/domain"
)

const authScheme = "authkey "

// Client is the HTTP client for communicating with the channel API
type Client struct {
	baseURL    string
	authKey    string
	httpClient *http.Client
}

// NewClient creates a new channel API client
func NewClient(baseURL, authKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authKey: authKey,
		httpClient: &http.Client{
			// posting waits for the moderation oracle
			Timeout: 3 * time.Minute,
		},
	}
}

// Health returns the channel name
func (c *Client) Health(ctx context.Context) (string, error) {
	var result struct {
		Name string `json:"name"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &result); err != nil {
		return "", err
	}
	return result.Name, nil
}

// GetMessages returns the listing as served, welcome message first
func (c *Client) GetMessages(ctx context.Context) ([]domain.Message, error) {
	var messages []domain.Message
	if err := c.do(ctx, http.MethodGet, "/", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// PostMessage submits a message to the moderation pipeline
func (c *Client) PostMessage(ctx context.Context, msg domain.Message) error {
	return c.do(ctx, http.MethodPost, "/", msg, nil)
}

// ============ HTTP Helpers ============

func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", authScheme+c.authKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
