package apclient

import (
	"context"
	"net/http"
)

// User is the account profile of the token owner.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Plan     struct {
		ID string `json:"id"`
	} `json:"plan,omitempty"`
}

// Me fetches the profile of the account the token belongs to. Useful as a
// cheap credential check.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/v2/users/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
