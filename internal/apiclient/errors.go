package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingID is returned when an update or delete has no product id to address
var ErrMissingID = errors.New("product id is required")

// APIError is a non-2xx response from the API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.Status, e.Message)
}

// DecodeError is a 2xx response whose body could not be decoded
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable %d response: %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// undecodable reports whether err is only a body that failed to decode
func undecodable(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// errorBody is the error shape the API uses; some endpoints put the text in message instead
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return &APIError{Status: status, Message: eb.Error}
		}
		if eb.Message != "" {
			return &APIError{Status: status, Message: eb.Message}
		}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(http.StatusText(status))}
}

// ServerMessage extracts the message the server sent with a failed call.
// It returns "" for transport errors and responses without a usable body.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != http.StatusText(apiErr.Status) {
		return apiErr.Message
	}
	return ""
}
