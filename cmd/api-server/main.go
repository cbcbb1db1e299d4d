package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pokedex-api/internal/config"
	"pokedex-api/internal/handler"
	"pokedex-api/internal/middleware"
	"pokedex-api/internal/observability"
	"pokedex-api/internal/repository/postgres"
	"pokedex-api/internal/repository/redisstore"
	"pokedex-api/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}
	observability.InitLogger(logLevel, logFormat)

	slog.Info("starting pokedex api server")

	db, err := config.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to postgresql")

	rdb, err := config.NewRedisClient(cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to session store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rdb.Close()
	slog.Info("connected to redis session store")

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		slog.Error("failed to initialize user repository", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sessionRepo := redisstore.NewSessionRepository(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, sessionRepo, cfg.BcryptCost)
	favoritesService := service.NewFavoritesService(userRepo)

	userHandler := handler.NewUserHandler(authService, cfg.SessionTTL)
	favoritesHandler := handler.NewFavoritesHandler(favoritesService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go config.ReportPoolStats(ctx, db, 15*time.Second)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.PropagateRequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(middleware.ParseOrigins(cfg.AllowedOrigins)))
	r.Use(middleware.Metrics())
	r.Use(middleware.OpenAPIValidator(middleware.DefaultOpenAPIValidatorConfig()))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.Ready(db, rdb))
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(handler.NotFound)

	r.Route("/user", func(r chi.Router) {
		authLimiter := middleware.NewRateLimiter(ctx, 5, 10)
		apiLimiter := middleware.NewRateLimiter(ctx, 20, 50)

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware())
			r.Post("/signup", userHandler.SignUp)
			r.Post("/login", userHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authService))
			r.Use(apiLimiter.Middleware())

			r.Get("/", userHandler.Me)
			r.Post("/logout", userHandler.Logout)
			r.Post("/favorites/add", favoritesHandler.Add)
			r.Post("/favorites/remove", favoritesHandler.Remove)
			r.Get("/favorites", favoritesHandler.List)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	cancel()

	slog.Info("server stopped gracefully")
}
