package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/apexautolab/leadapi/internal/auth"
	"github.com/apexautolab/leadapi/internal/domain/lead"
)

// Server wires HTTP handlers.
type Server struct {
	leads    *lead.Service
	sessions *auth.Service
	logger   *slog.Logger
}

// NewRouter creates the HTTP router with middleware and all routes.
func NewRouter(leads *lead.Service, sessions *auth.Service, verifier TokenVerifier, corsOrigins []string, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Use(CORSMiddleware(corsOrigins))
	r.Use(MaxBodyBytes(maxBodyBytes))

	srv := &Server{leads: leads, sessions: sessions, logger: logger}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", srv.handleHealth)
		api.Post("/lead", srv.handleCreateLead)
		api.Post("/admin/login", srv.handleLogin)

		api.Route("/admin/leads", func(admin chi.Router) {
			admin.Use(AuthMiddleware(verifier))
			admin.Get("/", srv.handleListLeads)
			admin.Get("/{id}", srv.handleGetLead)
			admin.Patch("/{id}", srv.handleUpdateLead)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
