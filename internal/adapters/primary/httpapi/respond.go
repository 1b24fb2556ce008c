package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adamatova/community-api/internal/domain/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Errorf("encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Error: msg})
}

// handleError maps domain errors onto HTTP statuses. Anything unrecognized is
// a 500 and gets logged with its cause.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		h.writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrForbidden):
		h.writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrAlreadyRegistered):
		h.writeError(w, http.StatusConflict, "already registered")
	case errors.Is(err, service.ErrValidationFailed):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Errorf("request failed: %v", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(r *http.Request, v interface{}) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}
