// Package api is the client of the Horizons auth API.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/remote"
)

// DefaultURL is where the auth API listens in local deployments.
const DefaultURL = "http://127.0.0.1:8000"

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
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

func (c *Client) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	var u models.User
	if err := c.remote.PostJSON(ctx, "/signup", signupRequest{username, email, password}, &u); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	if err := c.remote.PostJSON(ctx, "/login", loginRequest{email, password}, &u); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &u, nil
}

// HealthCheck returns the body of /healthz, {"status":"ok"} when healthy.
func (c *Client) HealthCheck(ctx context.Context) (map[string]string, error) {
	var status map[string]string
	if err := c.remote.GetJSON(ctx, "/healthz", &status); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return status, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.remote.GetJSON(ctx, fmt.Sprintf("/users/%d", id), &u); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// UserMessage turns an error from this client into text for the login
// screen.
func UserMessage(err error) string {
	var (
		se *remote.ServerError
		ne *remote.NetworkError
		de *remote.DecodeError
	)
	switch {
	case errors.As(err, &se):
		return se.Message()
	case errors.As(err, &ne):
		return "Error de conexión: " + ne.Err.Error()
	case errors.As(err, &de):
		return "Respuesta inválida del servidor: " + string(de.Raw)
	}
	return err.Error()
}
