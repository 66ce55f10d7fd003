package api

import (
	"bytes"
	"embed"
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
	"github.com/justlookingaroundkami/Justice-lens-AI/internal/models"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	// audioSrc inlines MP3 bytes as a data URI so the page needs no second
	// request for playback.
	"audioSrc": func(audio []byte) template.URL {
		return template.URL("data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(audio))
	},
}).ParseFS(templateFS, "templates/page.html"))

type pageData struct {
	Titles []string
	View   *models.View
}

// PageHandler renders the interactive page. The whole interaction state
// travels in the query string: "case" selects, a present "choice" submits.
type PageHandler struct {
	eval   *interaction.Evaluator
	logger *slog.Logger
}

func NewPageHandler(eval *interaction.Evaluator, logger *slog.Logger) *PageHandler {
	return &PageHandler{eval: eval, logger: logger}
}

// StateFromQuery builds the interaction state for a page request.
func StateFromQuery(r *http.Request) (models.State, error) {
	q := r.URL.Query()
	state := interaction.Select(models.State{}, q.Get("case"))
	if !q.Has("choice") {
		return state, nil
	}
	return interaction.Judge(state, q.Get("choice"))
}

// Page handles GET /
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	state, err := StateFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	view, err := h.eval.Evaluate(r.Context(), state)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var buf bytes.Buffer
	data := pageData{Titles: h.eval.Catalog().ListTitles(), View: view}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render page", "error", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
