package rest

import (
	"encoding/json"
	"net/http"

	"github.com/fastygo/frontend/domain"
)

// envelope mirrors the backend's standard response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// errorMessage extracts the human-readable error the backend attached to the
// envelope. The backend usually sends a bare string, but older deployments
// wrapped it in an object, so both are handled.
func (e envelope) errorMessage() string {
	if len(e.Error) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(e.Error, &msg); err == nil {
		return msg
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(e.Error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type taskPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func taskToPayload(task *domain.Task) taskPayload {
	return taskPayload{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
	}
}

// statusError maps a non-2xx backend status onto the domain error taxonomy,
// reusing the message the backend sent when it provided one.
func statusError(status int, message string) error {
	code := domain.ErrCodeInternal
	switch {
	case status == http.StatusUnauthorized:
		code = domain.ErrCodeUnauthorized
	case status == http.StatusForbidden:
		code = domain.ErrCodeForbidden
	case status == http.StatusNotFound:
		code = domain.ErrCodeNotFound
	case status == http.StatusConflict:
		code = domain.ErrCodeConflict
	case status >= 400 && status < 500:
		code = domain.ErrCodeInvalid
	case status >= 500:
		code = domain.ErrCodeUnavailable
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return domain.NewError(code, message)
}
