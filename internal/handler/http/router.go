package http

import (
	"log/slog"
	"os"

	"github.com/attendly/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	correctionHandler CorrectionHandler,
	analyticsHandler AnalyticsHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/startAttendent", attendanceHandler.CheckIn)
			r.Patch("/EndAttendance/checkout", attendanceHandler.CheckOut)
			r.Get("/my-history", attendanceHandler.MyHistory)
			r.Post("/request-correction", correctionHandler.Request)

			// Approver only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/getAttendent", attendanceHandler.List)
				r.Get("/dashboard-stats", analyticsHandler.DashboardStats)
				r.Get("/pending-corrections", correctionHandler.ListPending)
				r.Post("/approve-correction", correctionHandler.Resolve)
				r.Get("/analytics-report", analyticsHandler.Report)
				r.Get("/attendanceReport", reportHandler.Export)
			})
		})
	})

	return r
}
