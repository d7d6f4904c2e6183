package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/meals/internal/service/errs"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Error sending response", "error", err)
	}
}

// Error maps a service error to a status code and writes it.
// Storage and unexpected errors are logged and hidden from the caller.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		JSON(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		JSON(w, r, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		JSON(w, r, http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}
