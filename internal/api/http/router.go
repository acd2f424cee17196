package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	auth "github.com/mind-engage/mindengage-speaking/internal/auth/middleware"
	"github.com/mind-engage/mindengage-speaking/internal/lesson"
	"github.com/mind-engage/mindengage-speaking/internal/rbac"
	syncx "github.com/mind-engage/mindengage-speaking/internal/sync"
)

type Deps struct {
	Store       lesson.Store
	Events      *syncx.EventRepo
	Auth        *auth.AuthService
	CORSOrigins []string
	LocalLogin  bool
	Ready       func() error // nil means always ready
}

// NewRouter mounts every public and protected route.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if d.LocalLogin {
		r.Post("/auth/login", auth.LoginHandler(d.Auth))
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("assess:run")).
			Post("/assess", AssessHandler())

		pr.With(rbac.Require("lesson:create")).
			Post("/lessons", UploadLessonHandler(d.Store))
		pr.With(rbac.Require("lesson:view")).
			Get("/lessons", ListLessonsHandler(d.Store))
		pr.With(rbac.Require("lesson:view")).
			Get("/lessons/{lessonID}", GetLessonHandler(d.Store))

		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", CreateAttemptHandler(d.Store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts", ListAttemptsHandler(d.Store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}", GetAttemptHandler(d.Store))

		if d.Events != nil {
			pr.With(rbac.Require("events:read")).
				Get("/events", ListEventsHandler(d.Events))
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	return r
}
