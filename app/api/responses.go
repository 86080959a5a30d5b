// Package api holds the JSON plumbing shared by the resource handlers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mytheresa/catalog-api/app/validation"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is the body of confirmations such as a successful delete.
type MessageResponse struct {
	Message string `json:"message"`
}

const validationMessage = "The given data was invalid"

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.DebugContext(r.Context(), "sending error response",
		"status_code", status,
		"message", message,
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteServerError logs err and answers 500 with message only; err never reaches the client.
func WriteServerError(w http.ResponseWriter, r *http.Request, message string, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"status_code", http.StatusInternalServerError,
		"message", message,
		"error", err.Error(),
		"error_type", fmt.Sprintf("%T", err),
		"request_id", middleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: message})
}

// WriteRequestError answers a decoding or validation failure: 422 with the
// offending fields for *validation.Error, 400 otherwise.
func WriteRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		slog.DebugContext(r.Context(), "validation failed",
			"fields", verr.Fields,
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"method", r.Method)

		WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: validationMessage, Fields: verr.Fields})
		return
	}

	WriteError(w, r, http.StatusBadRequest, "Invalid JSON body")
}
