package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/isdelr/resume-builder-be/internal/api/handlers"
	"github.com/isdelr/resume-builder-be/internal/auth"
	"github.com/isdelr/resume-builder-be/internal/metrics"
	"github.com/isdelr/resume-builder-be/internal/services"
)

// Options carries the router settings that come from configuration.
type Options struct {
	CORSOrigins  []string
	SecureCookie bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(
	accountService services.AccountServiceProvider,
	resumeService services.ResumeServiceProvider,
	eventService services.EventServiceProvider,
	tokens *auth.Tokens,
	m *metrics.Metrics,
	opts Options,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, eventService, tokens, opts.SecureCookie)
	resumeHandler := handlers.NewResumeHandler(resumeService)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", accountHandler.Register)
			r.Post("/verify", accountHandler.Verify)
			r.Post("/login", accountHandler.Login)
			r.Post("/logout", accountHandler.Logout)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Get("/me", accountHandler.GetMe)
			r.Get("/me/events", accountHandler.GetEvents)

			r.Route("/drafts", func(r chi.Router) {
				r.Post("/", resumeHandler.StartDraft)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", resumeHandler.GetDraft)
					r.Delete("/", resumeHandler.DiscardDraft)
					r.Post("/education", resumeHandler.AddEducation)
					r.Post("/experience", resumeHandler.AddExperience)
					r.Post("/projects", resumeHandler.AddProject)
					r.Post("/generate", resumeHandler.Generate)
				})
			})

			r.Get("/resume", resumeHandler.GetResume)
		})
	})

	return r
}
