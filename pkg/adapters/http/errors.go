package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aretw0/portcfg/pkg/domain"
)

const maxErrorBody = 64 << 10

// decodeError classifies a non-success response by status alone.
// 400 carries newline-delimited validation messages; anything else is a RequestError.
func decodeError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &domain.RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read error body: %w", err)}
	}
	body := string(data)

	if resp.StatusCode == http.StatusBadRequest {
		if strings.TrimSpace(body) == "" {
			body = http.StatusText(http.StatusBadRequest)
		}
		return domain.NewValidationError(body)
	}
	return &domain.RequestError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(body),
	}
}

// writeError maps service errors to the wire contract.
func writeError(w http.ResponseWriter, err error) int {
	var (
		verr     *domain.ValidationError
		conflict *domain.ConflictError
		status   int
		body     string
	)
	switch {
	case errors.As(err, &verr):
		status, body = http.StatusBadRequest, strings.Join(verr.Messages, "\n")
	case errors.As(err, &conflict):
		status, body = http.StatusConflict, conflict.Message
	case errors.Is(err, domain.ErrPortNotFound):
		status, body = http.StatusNotFound, err.Error()
	default:
		status, body = http.StatusInternalServerError, "An unexpected error has occurred."
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	io.WriteString(w, body)
	return status
}
