package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	RateLimiter    *middleware.RateLimiter
	MetricsHandler http.Handler
}

func NewRouter(JWTService jwt.Service, attendanceHandler AttendanceHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
					if opts.RateLimiter != nil {
						r.With(opts.RateLimiter.Middleware).Post("/events", attendanceHandler.RecordEvent)
					} else {
						r.Post("/events", attendanceHandler.RecordEvent)
					}
					r.Post("/regularizations", attendanceHandler.SubmitRegularization)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/regularizations/{id}/approve", attendanceHandler.Approve)
					r.Post("/regularizations/{id}/reject", attendanceHandler.Reject)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/history", attendanceHandler.History)
					r.Get("/summary", attendanceHandler.Summary)
					r.Get("/today", attendanceHandler.Today)
					r.Get("/overview", attendanceHandler.Overview)
					r.Get("/duration", attendanceHandler.Duration)
				})
			})
		})
	})
	return r
}
