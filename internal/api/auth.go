package api

import (
	"context"

	"tastebite/internal/models"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

// Session is the token pair plus profile returned by login and registration.
type Session struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	payload := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/login/", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account. The backend answers with a session but the
// caller decides whether to use it; registration does not log in by itself.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	var session Session
	if err := c.postJSON(ctx, "/register/", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	return c.postJSON(ctx, "/logout/", map[string]string{"refresh": refresh}, nil)
}

// CurrentUser fetches the profile of the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/user/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
