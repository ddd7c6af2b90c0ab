package apiclient

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Credentials is the body of the login and register calls
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what a successful login returns. Token is empty when the
// backend keeps no bearer session.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// RegisterResponse is what a successful registration returns
type RegisterResponse struct {
	Message string `json:"message"`
}

// Login submits credentials; any 2xx response means the user is authenticated,
// even when its body is not JSON
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, "login", http.MethodPost, "/login", creds, &resp)
	if undecodable(err) {
		c.log.Warn("Login succeeded with an unreadable body; continuing without token", zap.Error(err))
		resp, err = LoginResponse{}, nil
	}
	if err != nil {
		c.metrics.RecordAuth("login", "failure")
		return nil, err
	}
	c.metrics.RecordAuth("login", "success")
	return &resp, nil
}

// Register creates an account; like Login, any 2xx response counts
func (c *Client) Register(ctx context.Context, creds Credentials) (*RegisterResponse, error) {
	var resp RegisterResponse
	err := c.do(ctx, "register", http.MethodPost, "/register", creds, &resp)
	if undecodable(err) {
		c.log.Warn("Registration succeeded with an unreadable body", zap.Error(err))
		resp, err = RegisterResponse{}, nil
	}
	if err != nil {
		c.metrics.RecordAuth("register", "failure")
		return nil, err
	}
	c.metrics.RecordAuth("register", "success")
	return &resp, nil
}
