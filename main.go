package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aarsh-studio/portfolio-backend/config"
	"github.com/aarsh-studio/portfolio-backend/handlers"
	"github.com/aarsh-studio/portfolio-backend/middleware"
	"github.com/aarsh-studio/portfolio-backend/models"
	"github.com/aarsh-studio/portfolio-backend/service"
	"github.com/aarsh-studio/portfolio-backend/store"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = 15 * time.Minute
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb")
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	logger.Info().Str("db", cfg.DBName).Msg("connected to mongodb")

	var blobs service.BlobStore
	if cfg.S3Bucket != "" {
		s3svc, err := service.NewS3Service(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("s3")
		}
		blobs = s3svc
	} else {
		logger.Warn().Msg("AWS_S3_BUCKET not set; photo uploads will fail")
	}

	if err := seedSuperAdmin(ctx, db, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("super admin bootstrap")
	}

	authService := service.NewAuthService(db, logger)
	adminService := service.NewAdminService(db, db, logger)
	mediaService := service.NewMediaService(db, blobs, cfg.MaxUploadMB*1024*1024, logger)

	authHandler := &handlers.AuthHandler{Auth: authService, JWTSecret: cfg.JWTSecret}
	adminHandler := &handlers.AdminHandler{Admin: adminService}
	mediaHandler := &handlers.MediaHandler{Media: mediaService, MaxBytes: cfg.MaxUploadMB * 1024 * 1024}

	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.ClientURL))
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if cfg.RedisURL != "" {
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				logger.Fatal().Err(err).Msg("redis")
			}
			r.Use(middleware.RateLimit(redis.NewClient(opts), rateLimitRequests, rateLimitWindow))
			logger.Info().Msg("rate limiting enabled")
		}

		// Public
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/media", mediaHandler.List)
		r.Get("/media/{id}", mediaHandler.Get)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret, db))
			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/password", authHandler.ChangePassword)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
				r.Post("/media/photo", mediaHandler.UploadPhoto)
				r.Post("/media/video", mediaHandler.CreateVideo)
				r.Put("/media/{id}", mediaHandler.Update)
				r.Delete("/media/{id}", mediaHandler.Delete)

				r.Get("/admin/users", adminHandler.ListUsers)
				r.Get("/admin/pending-users", adminHandler.ListPending)
				r.Get("/admin/stats", adminHandler.Stats)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRoles(models.RoleSuperAdmin))
				r.Post("/admin/users", adminHandler.CreateUser)
				r.Put("/admin/users/{id}", adminHandler.UpdateUser)
				r.Delete("/admin/users/{id}", adminHandler.DeleteUser)
				r.Put("/admin/users/{id}/approve", adminHandler.Approve)
				r.Delete("/admin/users/{id}/reject", adminHandler.Reject)
			})
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}

// seedSuperAdmin creates the initial super admin from the environment when
// none exists yet, so a fresh deployment is never locked out.
func seedSuperAdmin(ctx context.Context, db *store.DB, cfg *config.Config, logger zerolog.Logger) error {
	count, err := db.CountByRole(ctx, models.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPass == "" {
		logger.Warn().Msg("no super admin exists and SUPER_ADMIN_EMAIL/PASSWORD are unset")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.CreateUser(ctx, &models.User{
		Name:       "Super Admin",
		Email:      service.NormalizeEmail(cfg.SuperAdminEmail),
		Password:   string(hash),
		Role:       models.RoleSuperAdmin,
		IsApproved: true,
		ApprovedAt: &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return err
	}
	logger.Info().Str("email", cfg.SuperAdminEmail).Msg("super admin created; change the password after first login")
	return nil
}
