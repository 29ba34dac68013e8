package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotOpen is returned when an edit or submit is attempted with the dialog closed.
var ErrNotOpen = errors.New("port configuration is not open")

// ErrSubmitInProgress is returned while an update request is in flight.
var ErrSubmitInProgress = errors.New("port update already in progress")

// ErrPortNotFound is returned when a port id cannot be found.
var ErrPortNotFound = errors.New("port not found")

// ValidationError is a correctable rejection of the operator's input.
// The service reports it with a client-input status and one message per line.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// NewValidationError builds a ValidationError from a newline-delimited body.
func NewValidationError(body string) *ValidationError {
	return &ValidationError{Messages: SplitMessages(body)}
}

// SplitMessages splits a plain-text error body into one message per line.
// A trailing newline does not produce an empty message.
func SplitMessages(body string) []string {
	body = strings.TrimRight(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	return strings.Split(body, "\n")
}

// RequestError is any failure of an update other than a validation rejection:
// a non-success status, or a transport failure when StatusCode is 0.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%d %s: %v", e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether the service rejected the write as stale or illegal.
func (e *RequestError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// ConflictError is raised by the flow service when a write cannot be applied to the
// current state of the port (stale revision, illegal transition, name clash).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
