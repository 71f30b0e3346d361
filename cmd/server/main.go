package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/auth"
	"github.com/ayush/gyft/backend/internal/config"
	"github.com/ayush/gyft/backend/internal/course"
	"github.com/ayush/gyft/backend/internal/logger"
	"github.com/ayush/gyft/backend/internal/middleware"
	"github.com/ayush/gyft/backend/internal/profile"
	"github.com/ayush/gyft/backend/internal/store"
	"github.com/ayush/gyft/backend/internal/validation"
)

// userStore is satisfied by both credential backends.
type userStore interface {
	auth.UserStore
	profile.UserStore
}

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := store.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer mongoClient.Disconnect(context.Background())
	mongoDB := mongoClient.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}
	courses := store.NewMongoCourseStore(mongoDB)

	// ── Users ────────────────────────────────────────────────
	var users userStore
	switch cfg.UserBackend {
	case "postgres":
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connect")
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("postgres migrate")
		}
		users = pgStore
	default:
		users = store.NewMongoUserStore(mongoDB)
	}
	log.Info().Str("backend", cfg.UserBackend).Msg("user store ready")

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb, cfg.SessionTTL)

	// ── MinIO ────────────────────────────────────────────────
	var archive course.FileStore
	if cfg.ArchiveEnabled() {
		minioStore, err := store.NewMinioStore(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("minio connect")
		}
		archive = minioStore
	} else {
		log.Info().Msg("MINIO_ENDPOINT not set, course archiving disabled")
	}

	// ── Services ─────────────────────────────────────────────
	validate := validation.New()
	gateway := course.NewHTTPGateway(cfg.GatewayURL, cfg.GatewayTimeout)

	authSvc := auth.NewService(users, sessions, validate, cfg.BcryptCost)
	profileSvc := profile.NewService(users, courses, validate)
	courseSvc := course.NewService(courses, archive, gateway, validate)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(authSvc, cfg.CookieSecure)
	profileHandler := profile.NewHandler(profileSvc)
	courseHandler := course.NewHandler(courseSvc)
	limiter := middleware.NewLoginLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)

	// ── Router ───────────────────────────────────────────────
	r := newRouter(routerDeps{
		log:          log,
		origins:      cfg.AllowedOrigins,
		cookieSecure: cfg.CookieSecure,
		sessions:     authSvc,
		limiter:      limiter,
		auth:         authHandler,
		profile:      profileHandler,
		course:       courseHandler,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.GatewayTimeout + 30*time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
