// Package apperr holds the error taxonomy shared by the upload pipeline,
// the outbound clients and the HTTP layer.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ConfigurationError reports a credential or setting that must be present
// before an outbound call can be attempted.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Key)
}

// NewConfigurationError returns a ConfigurationError for the given key.
func NewConfigurationError(key string) error {
	return &ConfigurationError{Key: key}
}

// RemoteServiceError reports a transport failure, a non-success status or an
// unexpected response shape from GitHub or the LLM endpoint. Body keeps the
// raw response for diagnostics.
type RemoteServiceError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteServiceError) Error() string {
	msg := e.Service + " request failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

// MalformedResponseError reports LLM output that could not be parsed or did
// not match the expected document schema after sanitisation.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return "malformed LLM response: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ValidationError reports a bad request from the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError returns a ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// HTTPStatus maps an error from the pipeline onto a response status.
func HTTPStatus(err error) int {
	var (
		verr *ValidationError
		cerr *ConfigurationError
		rerr *RemoteServiceError
		merr *MalformedResponseError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &cerr):
		return http.StatusInternalServerError
	case errors.As(err, &rerr), errors.As(err, &merr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the text shown to the end user for err. Remote bodies
// are kept out of the page; they are logged by the caller instead.
func UserMessage(err error) string {
	var (
		verr *ValidationError
		cerr *ConfigurationError
		rerr *RemoteServiceError
		merr *MalformedResponseError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &cerr):
		return "The service is not configured: " + cerr.Key + " is missing."
	case errors.As(err, &rerr):
		return "The " + rerr.Service + " service could not be reached. Please try again."
	case errors.As(err, &merr):
		return "The generated resume could not be read. Please submit the form again."
	default:
		return "Something went wrong while processing your resume."
	}
}
