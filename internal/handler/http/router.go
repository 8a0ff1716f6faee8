package http

import (
	"log/slog"
	"os"

	"github.com/fichador/fichador-backend/internal/handler/http/middleware"
	"github.com/fichador/fichador-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	workdayHandler WorkdayHandler,
	historyHandler HistoryHandler,
	syncHandler SyncHandler,
	scheduleHandler ScheduleHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fichador-api"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
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
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/schedule", scheduleHandler.Get)

			r.Route("/workday", func(r chi.Router) {
				r.Get("/today", workdayHandler.GetToday)
				r.Get("/{date}", workdayHandler.GetDay)
				r.Put("/{date}", workdayHandler.EditDay)
			})

			r.Route("/punch", func(r chi.Router) {
				r.Post("/", workdayHandler.Punch)
				r.Post("/manual", workdayHandler.PunchManual)
				r.Post("/confirm", workdayHandler.ConfirmOvertime)
				r.Post("/cancel", workdayHandler.CancelPending)
			})

			r.Route("/history", func(r chi.Router) {
				r.Get("/week", historyHandler.GetWeek)
				r.Get("/month", historyHandler.GetMonth)
			})

			r.Route("/export", func(r chi.Router) {
				r.Get("/week.csv", historyHandler.ExportWeek)
				r.Get("/month.csv", historyHandler.ExportMonth)
			})

			r.Route("/sync", func(r chi.Router) {
				r.Post("/", syncHandler.Trigger)
				r.Get("/status", syncHandler.Status)
			})
		})
	})
	return r
}
