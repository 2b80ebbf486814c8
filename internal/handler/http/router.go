package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/config"
	"github.com/gajihub/attendance-engine-go/internal/handler/http/middleware"
	"github.com/gajihub/attendance-engine-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	overtimeHandler OvertimeHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/summary", attendanceHandler.GetSummary)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/{employeeID}", attendanceHandler.GetSchedule)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", attendanceHandler.CreateScheduleEntry)
					r.Put("/{id}/correction", attendanceHandler.CorrectScheduleEntry)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.Submit)
					r.Get("/", leaveHandler.ListRequests)
					r.Post("/{id}/cancel", leaveHandler.Cancel)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/{id}/approve", leaveHandler.Approve)
						r.Post("/{id}/reject", leaveHandler.Reject)
					})
				})
				r.Get("/quotas/{employeeID}/{year}", leaveHandler.GetQuota)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", overtimeHandler.Submit)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/{id}/approve", overtimeHandler.Approve)
						r.Post("/{id}/reject", overtimeHandler.Reject)
					})
				})
			})

			// Admin only
			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)
					r.Put("/", payrollHandler.UpdateSettings)
				})

				r.Route("/rates", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRateEntries)
					r.Post("/", payrollHandler.CreateRateEntry)
					r.Delete("/{id}", payrollHandler.DeleteRateEntry)
				})

				r.Route("/components", func(r chi.Router) {
					r.Get("/", payrollHandler.ListComponents)
					r.Post("/", payrollHandler.CreateComponent)
					r.Delete("/{id}", payrollHandler.DeleteComponent)
				})

				r.Route("/batches", func(r chi.Router) {
					r.Get("/", payrollHandler.List)

					// Batch generation walks every employee's period, so
					// rate-limit it separately from the cheap endpoints.
					r.Group(func(r chi.Router) {
						r.Use(httprate.LimitByIP(10, time.Minute))
						r.Post("/", payrollHandler.Generate)
						r.Post("/{id}/regenerate", payrollHandler.Regenerate)
					})

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", payrollHandler.Get)
						r.Delete("/", payrollHandler.Delete)
						r.Post("/submit", payrollHandler.Submit)
						r.Post("/approve", payrollHandler.Approve)
						r.Post("/reject", payrollHandler.Reject)
						r.Post("/reopen", payrollHandler.Reopen)
						r.Post("/pay", payrollHandler.MarkPaid)
						r.Get("/export", payrollHandler.Export)
						r.Get("/events", payrollHandler.ListEvents)
					})
				})

				r.Patch("/lines/{id}/correction", payrollHandler.CorrectLine)
			})
		})
	})
	return r
}
