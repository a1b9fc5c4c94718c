package router

import (
	"net/http"

	"feedback-backend/internal/auth"
	"feedback-backend/internal/handlers"
	customMiddleware "feedback-backend/internal/middleware"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const ServiceName = "feedback-backend"

type Deps struct {
	FeedbackRepo  repository.FeedbackRepository
	Notifier      notify.Notifier
	Authenticator *auth.Authenticator
	CORSOrigins   []string
	// RequestLog enables chi's per-request log line.
	RequestLog bool
}

// NewRouter wires every HTTP route of the feedback API.
func NewRouter(deps Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.Authenticator)
	feedbackHandler := handlers.NewFeedbackHandler(deps.FeedbackRepo, deps.Notifier)
	healthHandler := handlers.NewHealthHandler(deps.FeedbackRepo, ServiceName)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Global middleware
	if deps.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)

	// Public routes (no auth required)
	r.Post("/admin/login", authHandler.Login)
	r.Post("/feedback", feedbackHandler.CreateFeedback)

	// Protected routes (admin token required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(deps.Authenticator))

		r.Get("/feedback", feedbackHandler.ListFeedback)
		r.Delete("/feedback/{id}", feedbackHandler.DeleteFeedback)
	})

	return r
}
