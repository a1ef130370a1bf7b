package api

import (
	"errors"
	"fmt"
)

// DefaultErrorMessage is used when an error response carries no detail.
const DefaultErrorMessage = "API request failed"

// APIError is a non-success HTTP response from the catalog service.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

// NewAPIError constructs an APIError, falling back to DefaultErrorMessage
// when the server supplied no message.
func NewAPIError(status int, method, path, message string) error {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &APIError{Status: status, Method: method, Path: path, Message: message}
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NetworkError is a transport failure: the service could not be reached or
// the connection broke before a response arrived.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

// NewNetworkError constructs a NetworkError.
func NewNetworkError(method, path string, err error) error {
	return &NetworkError{Method: method, Path: path, Err: err}
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// Message returns the text worth showing to a user for err: the server
// detail for API errors, the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
