// Package respond writes JSON response bodies and maps service errors to
// HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wellpath/portal/internal/service"
)

type message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("render json failed", "error", err, "path", r.URL.Path)
	}
}

func Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, message{Message: msg})
}

// Error writes {message} with the status for err's class. Unclassified
// errors are logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	var se *service.Error
	if status == http.StatusInternalServerError || !errors.As(err, &se) {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		Message(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	Message(w, r, status, se.Message)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
