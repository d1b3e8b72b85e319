package api

import (
	"context"
	"fmt"

	"github.com/dotcomico/dotmarket-client/internal/model"
)

// ListUsers fetches every account (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes an account's role (admin only).
func (c *Client) UpdateUserRole(ctx context.Context, id int, role model.Role) (*model.User, error) {
	payload := map[string]model.Role{"role": role}
	var user model.User
	if err := c.patchJSON(ctx, fmt.Sprintf("/users/%d/role", id), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
