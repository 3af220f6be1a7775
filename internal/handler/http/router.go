package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/buildforce/attendance-backend-go/internal/config"
	"github.com/buildforce/attendance-backend-go/internal/handler/http/middleware"
	"github.com/buildforce/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	checkinHandler CheckinHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	worksiteHandler WorksiteHandler,
	qrcodeHandler QRCodeHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendOrigin},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Worker-facing endpoints. Check-ins are submitted from site phones
		// without dashboard credentials.
		r.Post("/checkins", checkinHandler.Create)

		r.Route("/public/qr/{token}", func(r chi.Router) {
			r.Get("/", qrcodeHandler.Resolve)
			r.Post("/checkin", qrcodeHandler.Checkin)
		})

		// Dashboard event stream, authenticated by short-lived query token.
		r.Get("/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/sse-token", authHandler.SSEToken)

			r.Route("/checkins", func(r chi.Router) {
				r.Get("/", checkinHandler.List)
				r.Get("/stats", checkinHandler.Stats)
				r.Get("/{id}", checkinHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Patch("/{id}/status", checkinHandler.Review)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/daily", attendanceHandler.Daily)
				r.Get("/stats", attendanceHandler.Stats)
				r.Get("/records", attendanceHandler.Range)
				r.Get("/employees/{employeeID}", attendanceHandler.Range)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/leave", attendanceHandler.CreateLeave)
					r.Delete("/leave/{id}", attendanceHandler.DeleteLeave)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/worksites", func(r chi.Router) {
				r.Get("/", worksiteHandler.List)
				r.Get("/{id}", worksiteHandler.Get)
				r.Get("/{id}/qr-codes", qrcodeHandler.ListForWorksite)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", worksiteHandler.Create)
					r.Put("/{id}", worksiteHandler.Update)
					r.Delete("/{id}", worksiteHandler.Delete)
					r.Post("/{id}/qr-codes", qrcodeHandler.Create)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Delete("/qr-codes/{id}", qrcodeHandler.Deactivate)
			})
		})
	})

	return r
}
