package http

import (
	"log/slog"
	"os"

	"github.com/carebridge/evv-backend-go/internal/config"
	"github.com/carebridge/evv-backend-go/internal/handler/http/middleware"
	"github.com/carebridge/evv-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	visitHandler VisitHandler,
	shiftHandler ShiftHandler,
	clientHandler ClientHandler,
	userHandler UserHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "evv-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
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

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// The event stream authenticates with a short-lived query-param token
	// because EventSource cannot send custom headers.
	r.Get("/events", eventHandler.Stream)

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/events/token", eventHandler.GetEventToken)

		// Caregiver only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCaregiver)

			r.Post("/visits/start", visitHandler.Start)
			r.Post("/visits/end", visitHandler.End)
			r.Get("/caregiver/shifts", shiftHandler.ListMine)
			r.Get("/caregiver/shifts/{shiftID}/visits", visitHandler.ListByShift)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/caregivers", shiftHandler.ListAll)
				r.Post("/", shiftHandler.Create)
				r.Put("/{shiftID}", shiftHandler.Update)
				r.Delete("/{shiftID}", shiftHandler.Delete)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", clientHandler.List)
				r.Post("/", clientHandler.Create)
				r.Get("/{clientID}", clientHandler.Get)
				r.Put("/{clientID}", clientHandler.Update)
				r.Delete("/{clientID}", clientHandler.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/{userID}", userHandler.Get)
			})

			r.Get("/roles", userHandler.ListRoles)
		})
	})

	return r
}
