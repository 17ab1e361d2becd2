package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/memberwd/backoffice/internal/entity"
)

// genericMessage replaces the backend detail when the error body is not
// the expected envelope, matching the frontend's toast fallback.
const genericMessage = "request failed, please try again"

const maxDetailLen = 512

// ResponseError is the backend's error envelope.
type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// APIError carries the backend's error envelope for a non-2xx response
// and unwraps to the status-class sentinel so callers can branch with
// errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string

	sentinel error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Detail)
	}

	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    genericMessage,
		sentinel:   sentinelForStatus(statusCode),
	}

	var envelope ResponseError

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		apiErr.Detail = envelope.Error
	} else if len(body) > 0 {
		apiErr.Detail = string(body)
	}

	if len(apiErr.Detail) > maxDetailLen {
		apiErr.Detail = apiErr.Detail[:maxDetailLen]
	}

	return apiErr
}

func sentinelForStatus(code int) error {
	switch {
	case code == http.StatusBadRequest:
		return entity.ErrInvalidInput
	case code == http.StatusUnauthorized:
		return entity.ErrUnauthorized
	case code == http.StatusForbidden:
		return entity.ErrForbidden
	case code == http.StatusNotFound:
		return entity.ErrNotFound
	case code == http.StatusConflict:
		return entity.ErrConflict
	case code == http.StatusTooManyRequests:
		return entity.ErrRateLimited
	case code >= http.StatusInternalServerError:
		return entity.ErrServiceUnavailable
	default:
		return entity.ErrInvalidInput
	}
}
