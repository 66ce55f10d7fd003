package api

import (
	"net/http"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
)

type HealthHandler struct {
	eval *interaction.Evaluator
}

func NewHealthHandler(eval *interaction.Evaluator) *HealthHandler {
	return &HealthHandler{eval: eval}
}

// Health reports the catalog size and configured narration provider. The
// narration service itself is not probed.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Cases:     h.eval.Catalog().Len(),
		Narration: h.eval.NarrationProvider(),
	})
}
