package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/config"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance     AttendanceHandler
	Payroll        PayrollHandler
	Shift          ShiftHandler
	PayRate        PayRateHandler
	Profile        ProfileHandler
	Unavailability UnavailabilityHandler
}

func NewRouter(appCfg config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appCfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Get("/me", h.Profile.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/status", h.Attendance.GetStatus)
				r.Get("/my", h.Attendance.GetMyPunches)

				// Manager or owner
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/punches", h.Attendance.ListPunches)
					r.Post("/punches/from-shift", h.Attendance.CreateFromShift)
					r.Post("/punches/{id}/adjust", h.Attendance.Adjust)
					r.Get("/shifts/{shiftId}/roster-proposal", h.Attendance.RosterProposal)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/unavailability", func(r chi.Router) {
				r.Get("/", h.Unavailability.List)
				r.Post("/", h.Unavailability.CreateBlock)
				r.Delete("/{id}", h.Unavailability.DeleteBlock)
				r.Post("/recurring", h.Unavailability.CreateRule)
				r.Delete("/recurring/{id}", h.Unavailability.DeleteRule)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/recurring/{id}/skip", h.Unavailability.SkipRule)
					r.Delete("/recurring/{id}/skip", h.Unavailability.UnskipRule)
				})
			})

			// Manager or owner
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/profiles", h.Profile.List)

				r.Route("/pay-rates", func(r chi.Router) {
					r.Get("/", h.PayRate.List)
					r.Put("/", h.PayRate.BulkUpsert)
					r.Put("/{staffId}", h.PayRate.Upsert)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Get("/", h.Payroll.Compute)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOwner)
						r.Get("/export", h.Payroll.Export)
					})
				})
			})
		})
	})
	return r
}
