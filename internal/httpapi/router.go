// Package httpapi serves the wellness pipeline as a JSON API.
package httpapi

import (
	"net/http"

	"github.com/chris-regnier/wellnessctl/internal/logging"
	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// UserHeader names the request header that selects the acting user.
const UserHeader = "X-User-ID"

// Router wires the API routes to a Service.
type Router struct {
	svc            *wellness.Service
	sess           session.Provider
	logger         *zap.Logger
	allowedOrigins []string
	// onWrite runs after every successful mutation.
	onWrite func()
}

// Option configures a Router.
type Option func(*Router)

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(rt *Router) {
		if len(origins) > 0 {
			rt.allowedOrigins = origins
		}
	}
}

// WithWriteHook registers fn to run after each successful write.
func WithWriteHook(fn func()) Option {
	return func(rt *Router) { rt.onWrite = fn }
}

// NewRouter creates a new router instance.
func NewRouter(svc *wellness.Service, sess session.Provider, logger *zap.Logger, opts ...Option) *Router {
	rt := &Router{
		svc:            svc,
		sess:           sess,
		logger:         logging.OrNop(logger),
		allowedOrigins: []string{"*"},
		onWrite:        func() {},
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", UserHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", rt.healthCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sentiment", rt.scoreSentiment)

		r.Group(func(r chi.Router) {
			r.Use(Identify(rt.sess))

			r.Route("/checkins", func(r chi.Router) {
				r.Post("/", rt.createCheckIn)
				r.Get("/", rt.listCheckIns)
				r.Get("/days", rt.listDays)
			})

			r.Route("/journal", func(r chi.Router) {
				r.Post("/", rt.createJournal)
				r.Get("/", rt.listJournal)
				r.Get("/{entryID}", rt.getJournal)
				r.Delete("/{entryID}", rt.deleteJournal)
			})

			r.Get("/trend", rt.getTrend)

			r.Route("/recommendations", func(r chi.Router) {
				r.Get("/", rt.getRecommendations)
				r.Post("/{recID}/complete", rt.completeRecommendation(true))
				r.Delete("/{recID}/complete", rt.completeRecommendation(false))
			})

			r.Get("/dashboard", rt.getDashboard)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	rt.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
