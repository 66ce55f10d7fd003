package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/justlookingaroundkami/Justice-lens-AI/internal/interaction"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	eval *interaction.Evaluator,
	apiKey string,
	corsOrigins []string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS(corsOrigins))
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	// Handlers
	healthH := NewHealthHandler(eval)
	pageH := NewPageHandler(eval, logger)
	caseH := NewCaseHandler(eval, logger)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)
	r.Get("/", pageH.Page)

	// Authenticated routes
	r.Route("/api", func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Get("/cases", caseH.List)
		r.Get("/cases/{title}", caseH.Get)
		r.Get("/options", caseH.Options)
		r.Post("/judge", caseH.Judge)
		r.Get("/narration", caseH.Narration)
	})

	return r
}
