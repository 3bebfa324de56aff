// Package brain talks to the BRAIN conversational webhook.
package brain

import (
	"context"
	"errors"
	"fmt"

	"github.com/horizons-app/horizons/internal/remote"
)

// DefaultURL is where BRAIN listens in local deployments.
const DefaultURL = "http://127.0.0.1:8010"

type request struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type response struct {
	Reply string `json:"reply"`
}

type Client struct {
	remote *remote.Client
}

func NewClient(baseURL string, opts ...remote.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{remote: remote.NewClient(baseURL, opts...)}
}

// Send posts one user message and returns BRAIN's reply. Errors are
// *remote.ServerError, *remote.NetworkError or *remote.DecodeError.
func (c *Client) Send(ctx context.Context, userID, message string) (string, error) {
	var resp response
	if err := c.remote.PostJSON(ctx, "/webhook", request{UserID: userID, Message: message}, &resp); err != nil {
		return "", fmt.Errorf("brain: %w", err)
	}
	return resp.Reply, nil
}

// Ping checks that BRAIN accepts connections. Any HTTP reply counts.
func (c *Client) Ping(ctx context.Context) error {
	err := c.remote.GetJSON(ctx, "/", nil)
	var ne *remote.NetworkError
	if errors.As(err, &ne) {
		return fmt.Errorf("brain unreachable: %w", err)
	}
	return nil
}
