package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Suyash1602/airBNB-clone/internal/http/handlers"
	sessionmw "github.com/Suyash1602/airBNB-clone/internal/http/middleware"
	"github.com/Suyash1602/airBNB-clone/internal/platform/auth"
	"github.com/Suyash1602/airBNB-clone/internal/repo/postgres"
	"github.com/Suyash1602/airBNB-clone/internal/service"
	"github.com/Suyash1602/airBNB-clone/internal/storage"
	"github.com/Suyash1602/airBNB-clone/pkg/config"
	"github.com/Suyash1602/airBNB-clone/pkg/database"
	"github.com/Suyash1602/airBNB-clone/pkg/events"
	"github.com/Suyash1602/airBNB-clone/pkg/logger"
	mw "github.com/Suyash1602/airBNB-clone/pkg/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to redis (session revocation deny-list)
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Auth platform
	codec := auth.NewCodec(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	hasher := auth.NewHasher()
	denyList := auth.NewRedisDenyList(redisClient)
	sessions := sessionmw.NewSessions(codec, denyList, cfg.Auth.CookieName, cfg.Auth.CookieSecure)

	// Photo storage
	photos, err := storage.NewPhotoStore(cfg.Uploads.Dir, cfg.Uploads.MaxPhotoMB)
	if err != nil {
		logger.Error("Failed to prepare photo store", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	placeRepo := postgres.NewPlaceRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)

	// Services
	authService, err := service.NewAuthService(userRepo, hasher, codec, denyList, eventBus)
	if err != nil {
		logger.Error("Failed to initialize auth service", "error", err)
		os.Exit(1)
	}
	placeService := service.NewPlaceService(placeRepo, eventBus)
	bookingService := service.NewBookingService(bookingRepo, placeRepo, eventBus)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, sessions)
	placesHandler := handlers.NewPlacesHandler(placeService, sessions)
	bookingsHandler := handlers.NewBookingsHandler(bookingService, sessions)
	uploadsHandler := handlers.NewUploadsHandler(photos, cfg.Uploads.MaxPhotos)

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.With(sessions.Optional).Post("/logout", authHandler.Logout)
	r.With(sessions.Optional).Get("/profile", authHandler.Profile)

	r.Mount("/places", placesHandler.Routes())
	r.Mount("/bookings", bookingsHandler.Routes())
	r.With(sessions.Require).Get("/user-places", placesHandler.UserPlaces)

	r.With(sessions.Require).Post("/upload-by-link", uploadsHandler.UploadByLink)
	r.With(sessions.Require).Post("/upload", uploadsHandler.Upload)

	// Static photo serving
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(photos.Dir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		logger.Info("Starting API server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		logger.Info("Shutting down API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
