package api

import (
	"context"

	"github.com/dotcomico/dotmarket-client/internal/model"
)

// LoginCredentials is the login request body.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is what the auth endpoints return on success.
type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

// Login exchanges credentials for a token and user.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.postJSON(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the auto-login session.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.postJSON(ctx, "/auth/register", input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
