package data

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
	"github.com/alutalk/channel/internal/biz/repo"
)

// hubRepo implements the hub repository over the hub HTTP API
type hubRepo struct {
	baseURL    string
	authKey    string
	httpClient *http.Client
}

// NewHubRepo creates a hub repository
func NewHubRepo(baseURL, authKey string) repo.HubRepo {
	return &hubRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		authKey: authKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register announces the channel to the hub
func (r *hubRepo) Register(ctx context.Context, channel domain.ChannelInfo) error {
	if r.baseURL == "" {
		return fmt.Errorf("hub url is not configured")
	}

	body, err := json.Marshal(channel)
	if err != nil {
		return fmt.Errorf("marshal channel: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/channels", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "authkey "+r.authKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("register channel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("register channel: hub returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}
