package api

import (
	"net/http"
	"time"

	"github.com/formgate/formgate/internal/api/handler"
	customMiddleware "github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/dispatch"
	"github.com/formgate/formgate/internal/domain"
	"github.com/formgate/formgate/internal/security"
	"github.com/formgate/formgate/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	formStore domain.FormStore,
	cooldowns domain.CooldownTracker,
	sessions domain.SessionStore,
	dispatcher dispatch.Dispatcher,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	formService := service.NewFormService(formStore, cooldowns, dispatcher)
	submissionService := service.NewSubmissionService(formStore, cooldowns, sessions, dispatcher)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler()
	formHandler := handler.NewFormHandler(formService)
	fieldHandler := handler.NewFieldHandler(formService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", healthHandler.Check)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/workspaces/{workspace}/forms", func(r chi.Router) {
				r.Get("/", formHandler.List)
				r.Post("/", formHandler.Create)

				r.Route("/{form}", func(r chi.Router) {
					r.Get("/", formHandler.Get)
					r.Delete("/", formHandler.Delete)

					r.Put("/title", formHandler.Rename)
					r.Put("/description", formHandler.SetDescription)
					r.Put("/cooldown", formHandler.SetCooldown)
					r.Put("/mention", formHandler.SetMention)
					r.Put("/destination", formHandler.SetDestination)
					r.Delete("/cooldowns/{user}", formHandler.ClearCooldown)

					r.Route("/fields", func(r chi.Router) {
						r.Post("/", fieldHandler.Add)

						r.Route("/{index}", func(r chi.Router) {
							r.Delete("/", fieldHandler.Remove)
							r.Post("/move", fieldHandler.Move)
							r.Put("/name", fieldHandler.Rename)
							r.Put("/style", fieldHandler.SetStyle)
							r.Put("/placeholder", fieldHandler.SetPlaceholder)
							r.Put("/validation", fieldHandler.SetValidation)
							r.Put("/inline", fieldHandler.SetInline)
						})
					})

					r.Post("/trigger", submissionHandler.Trigger)
				})
			})

			r.Route("/submissions/{session}", func(r chi.Router) {
				r.Post("/", submissionHandler.Submit)
				r.Delete("/", submissionHandler.Cancel)
			})
		})
	})

	return r
}
