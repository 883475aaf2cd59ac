// Package gateway implements the dispatcher against the platform
// gateway's REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/domain"
)

// Client talks JSON over HTTP to the platform gateway.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a gateway dispatcher client.
func NewClient(cfg config.GatewayConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type permissionsResponse struct {
	PrivateConversations bool `json:"private_conversations"`
}

func (c *Client) CanCreatePrivateConversation(ctx context.Context, destination domain.ChannelID) (bool, error) {
	var resp permissionsResponse
	path := fmt.Sprintf("/v1/channels/%s/permissions", destination)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.PrivateConversations, nil
}

type createConversationRequest struct {
	Name      string `json:"name"`
	Private   bool   `json:"private"`
	Invitable bool   `json:"invitable"`
}

type createConversationResponse struct {
	ID string `json:"id"`
}

func (c *Client) CreatePrivateConversation(ctx context.Context, destination domain.ChannelID, title string) (domain.ConversationRef, error) {
	req := createConversationRequest{
		Name:    title,
		Private: true,
	}

	var resp createConversationResponse
	path := fmt.Sprintf("/v1/channels/%s/conversations", destination)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", err
	}

	return domain.ConversationRef(resp.ID), nil
}

func (c *Client) Post(ctx context.Context, ref domain.ConversationRef, message domain.ComposedMessage) error {
	path := fmt.Sprintf("/v1/conversations/%s/messages", ref)
	return c.do(ctx, http.MethodPost, path, message, nil)
}

func (c *Client) GrantAccess(ctx context.Context, ref domain.ConversationRef, user domain.UserID) error {
	path := fmt.Sprintf("/v1/conversations/%s/members/%s", ref, user)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// do sends a request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
