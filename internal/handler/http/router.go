package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/scanpoint/attend-backend-go/internal/handler/http/middleware"
	"github.com/scanpoint/attend-backend-go/internal/handler/ws"
	"github.com/scanpoint/attend-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	enrollmentHandler EnrollmentHandler,
	gateway *ws.Gateway,
	allowedOrigins []string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attend-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
	slog.SetDefault(logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Persistent connections for scanning hardware and monitoring
	// consoles. The hardware cannot carry a bearer token; the socket
	// endpoint sits outside the authenticated API surface.
	r.Get("/ws", gateway.Handle)

	r.Route("/api/v1", func(r chi.Router) {
		// Owner controls; token issuance happens at the external auth
		// boundary, this service only verifies.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.OwnerOnly)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/mode", attendanceHandler.GetMode)
				r.Post("/mode/{action}", attendanceHandler.SetMode)
				r.Post("/manual", attendanceHandler.Manual)
				r.Get("/check-ins", attendanceHandler.ListCheckIns)
				r.Get("/check-outs", attendanceHandler.ListCheckOuts)
				r.Get("/employee/{id}", attendanceHandler.ListByEmployee)
				r.Get("/employees", enrollmentHandler.ListEmployees)
				r.Post("/start-enroll/{id}", enrollmentHandler.StartEnroll)
				r.Post("/reset-enroll", enrollmentHandler.ResetEnroll)
			})
		})
	})

	return r
}
