package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
)

type CaseHandler struct {
	eval   *interaction.Evaluator
	logger *slog.Logger
}

func NewCaseHandler(eval *interaction.Evaluator, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{eval: eval, logger: logger}
}

// List handles GET /api/cases
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.CaseListResponse{Titles: h.eval.Catalog().ListTitles()})
}

// Get handles GET /api/cases/{title}
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	// chi matches against RawPath when the request path needed it, so the
	// parameter is still escaped only in that case.
	title := chi.URLParam(r, "title")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(title)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid title: "+err.Error())
			return
		}
		title = unescaped
	}

	rec, err := h.eval.Catalog().GetByTitle(title)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Options handles GET /api/options
func (h *CaseHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.OptionListResponse{Options: models.Options})
}

// Judge handles POST /api/judge
func (h *CaseHandler) Judge(w http.ResponseWriter, r *http.Request) {
	var req models.JudgeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	state, err := interaction.Judge(interaction.Select(models.State{}, req.Title), req.Choice)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	view, err := h.eval.Evaluate(r.Context(), state)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Narration handles GET /api/narration?case=<title>
func (h *CaseHandler) Narration(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("case")
	if title == "" {
		writeError(w, http.StatusBadRequest, "case is required")
		return
	}

	audio, err := h.eval.Narrate(r.Context(), title)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadGateway {
			h.logger.Warn("narration failed", "case", title, "error", err, "request_id", RequestIDFrom(r.Context()))
		}
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
