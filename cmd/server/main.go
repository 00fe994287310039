package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	portalapi "github.com/EngKARANGWA/rugalika-backend/api/echo"
	"github.com/EngKARANGWA/rugalika-backend/cache"
	"github.com/EngKARANGWA/rugalika-backend/config"
	"github.com/EngKARANGWA/rugalika-backend/mail"
	"github.com/EngKARANGWA/rugalika-backend/middleware"
	"github.com/EngKARANGWA/rugalika-backend/mongodb"
	"github.com/EngKARANGWA/rugalika-backend/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	db, disconnect, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	codeRepo := mongodb.NewOneTimeCodeRepository(db)
	revokedRepo := mongodb.NewRevokedTokenRepository(db)
	newsRepo := mongodb.NewNewsRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)
	requestRepo := mongodb.NewHelpRequestRepository(db)
	uploadRepo := mongodb.NewUploadRepository(db)

	revocationCache := cache.NewRevocationCache(revokedRepo)

	// Services
	tokenService, err := services.NewTokenService(services.TokenConfig{
		AccessSecret:  []byte(cfg.AccessTokenSecret),
		RefreshSecret: []byte(cfg.RefreshTokenSecret),
		AccessTTL:     cfg.AccessTokenTTL(),
		RefreshTTL:    cfg.RefreshTokenTTL(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}

	var mailer mail.Sender = mail.LogSender{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		log.Warn().Msg("SMTP_HOST not set, one-time codes will be logged instead of mailed")
	}

	authService := services.NewAuthService(userRepo, codeRepo, revocationCache, tokenService, mailer, nil)
	newsService := services.NewNewsService(newsRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, newsRepo)
	requestService := services.NewHelpRequestService(requestRepo)
	analyticsService := services.NewAnalyticsService(userRepo, newsRepo, feedbackRepo, requestRepo)

	uploadService, err := services.NewUploadService(uploadRepo, cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload storage")
	}

	// Rate limiting is optional, the limiter is nil-safe when redis is absent.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	} else {
		log.Warn().Msg("REDIS_ADDR not set, rate limiting is disabled")
	}
	limiter := middleware.NewRedisLimiter(redisClient)

	api := portalapi.NewPortalAPI(
		authService, newsService, feedbackService, requestService,
		uploadService, analyticsService, limiter)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.GET("/healthz", func(c echo.Context) error {
		if err := mongodb.Ping(c.Request().Context(), db); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	api.RegisterRoutes(e)

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	revocationCache.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	}

	if err := disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect error")
	}

	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.ServerConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
