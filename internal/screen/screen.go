// Package screen contains the view-models behind every screen of the client:
// the login and register forms, the product list with its add/edit form, and
// the root that switches between them. They hold state and talk to the API;
// drawing is left to the front-end.
package screen

import (
	"context"
	"errors"

	"github.com/suteetoe/productdesk/internal/apiclient"
	"github.com/suteetoe/productdesk/internal/model"
)

var (
	// ErrBusy is returned when a submit is already in flight
	ErrBusy = errors.New("another request is in progress")
	// ErrClosed is returned when the screen went away before the response arrived
	ErrClosed = errors.New("screen closed")
	// ErrPasswordMismatch is returned when the register confirmation differs
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrIncomplete is returned when login is submitted without credentials
	ErrIncomplete = errors.New("email and password are required")
	// ErrNoForm is returned when a form operation runs while no form is open
	ErrNoForm = errors.New("no product form is open")
	// ErrAnswered is returned when a delete confirmation is answered twice
	ErrAnswered = errors.New("confirmation already answered")
)

// Notifier shows a blocking alert to the user
type Notifier interface {
	Alert(title, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(title, message string)

// Alert implements Notifier
func (f NotifierFunc) Alert(title, message string) { f(title, message) }

// AuthAPI is the part of the API client the auth screens use
type AuthAPI interface {
	Login(ctx context.Context, creds apiclient.Credentials) (*apiclient.LoginResponse, error)
	Register(ctx context.Context, creds apiclient.Credentials) (*apiclient.RegisterResponse, error)
}

// ProductAPI is the part of the API client the product screen uses
type ProductAPI interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) (model.Product, error)
	Delete(ctx context.Context, id string) error
}

// serverMessageOr prefers the message the server sent over the fallback
func serverMessageOr(err error, fallback string) string {
	if msg := apiclient.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
