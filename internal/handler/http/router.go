package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	claimHandler ClaimHandler,
	disputeHandler DisputeHandler,
	refundHandler RefundHandler,
	readinessHandler ReadinessHandler,
	cutoffHandler CutoffHandler,
	packageHandler DataPackageHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-exception-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
		r.Route("/claims", func(r chi.Router) {
			r.Post("/", claimHandler.Create)
			r.Get("/{id}", claimHandler.Get)
			r.Post("/{id}/approve", claimHandler.Approve)
			r.Post("/{id}/reject", claimHandler.Reject)
			r.Post("/{id}/confirm", claimHandler.Confirm)
			r.Post("/{id}/refund", refundHandler.GenerateForClaim)
		})

		r.Route("/disputes", func(r chi.Router) {
			r.Post("/", disputeHandler.Create)
			r.Get("/{id}", disputeHandler.Get)
			r.Post("/{id}/approve", disputeHandler.Approve)
			r.Post("/{id}/reject", disputeHandler.Reject)
			r.Post("/{id}/confirm", disputeHandler.Confirm)
			r.Post("/{id}/refund", refundHandler.GenerateForDispute)
		})

		r.Route("/refunds", func(r chi.Router) {
			r.Post("/", refundHandler.CreateDirect)
			r.Get("/{id}", refundHandler.Get)
			r.Post("/{id}/process", refundHandler.Process)
		})

		r.Route("/readiness", func(r chi.Router) {
			r.Get("/validate", readinessHandler.Validate)
			r.Get("/consistency", readinessHandler.CheckConsistency)
		})

		r.Route("/cutoff", func(r chi.Router) {
			r.Get("/status", cutoffHandler.ReadinessStatus)
			r.Post("/escalate", cutoffHandler.AutoEscalate)
			r.Post("/reminders", cutoffHandler.SendReminders)
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/payroll", packageHandler.PayrollView)
			r.Get("/leave", packageHandler.LeaveView)
			r.Get("/benefits", packageHandler.BenefitsView)
		})
	})

	return r
}
