package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	leaveHandler LeaveHandler,
	dashboardHandler DashboardHandler,
	eventHandler EventHandler,
	healthHandler HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource cannot set headers, the stream authenticates by query token
		r.Get("/events", eventHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/events/token", eventHandler.GetSSEToken)

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).
				Get("/dashboard/stats", dashboardHandler.GetStats)

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", leaveHandler.ListRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).
					Post("/", leaveHandler.CreateRequest)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.GetRequest)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveDecide))
						r.Post("/approve", leaveHandler.ApproveRequest)
						r.Post("/reject", leaveHandler.RejectRequest)
						r.Put("/status", leaveHandler.UpdateStatus)
					})

					r.With(middleware.RequirePermission(user.PermissionLeaveReply)).
						Post("/replies", leaveHandler.AddReply)
				})
			})

			r.Route("/leave-balances", func(r chi.Router) {
				r.Get("/me", leaveHandler.GetMyBalance)
				r.With(middleware.RequirePermission(user.PermissionBalanceViewAll)).
					Get("/{userID}", leaveHandler.GetBalance)
			})
		})
	})
	return r
}
