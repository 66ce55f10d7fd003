package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/catalog"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/judgment"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/narration"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, judgment.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, interaction.ErrNarrationDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, narration.ErrNarration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
