package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/config"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/metrics"
	minioRepo "github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/telemetry"
	httptransport "github.com/njprem/Recipe_share_APP_BackEnd/internal/transport/http"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logOpts := logging.Options{
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
		Service:     cfg.OTelServiceName,
	}
	var sink *logging.TCPSink
	if cfg.LogstashTCPAddr != "" {
		s, err := logging.NewTCPSink(logging.SinkConfig{Addr: cfg.LogstashTCPAddr})
		if err != nil {
			fmt.Fprintf(os.Stderr, "logstash sink disabled: %v\n", err)
		} else {
			sink = s
			logOpts.Mirror = sink
		}
	}
	logging.Init(logOpts)
	log := logging.Logger()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	if cfg.DBAutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	minioClient, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create minio client")
	}
	storage := minioRepo.NewStorage(minioClient, cfg.MinIOPublicURL)
	if err := storage.EnsureBucket(ctx, cfg.MinIOBucketRecipe); err != nil {
		log.Fatal().Err(err).Str("bucket", cfg.MinIOBucketRecipe).Msg("failed to prepare recipe bucket")
	}

	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	recipeRepo := postgres.NewRecipeRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)
	commentRepo := postgres.NewCommentRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, sessionRepo, jwtManager, cfg.GoogleAudience)
	profileService := service.NewProfileService(userRepo)
	recipeService := service.NewRecipeService(recipeRepo, storage, service.RecipeServiceConfig{
		Bucket:            cfg.MinIOBucketRecipe,
		Categories:        cfg.RecipeCategories,
		ImageMaxBytes:     cfg.ImageMaxBytes,
		ImageMaxDimension: cfg.ImageMaxDimension,
	})
	favoriteService := service.NewFavoriteService(favoriteRepo)
	commentService := service.NewCommentService(commentRepo, recipeRepo)

	appMetrics := metrics.New("recipe_share")
	likeTracker := service.NewLikeTracker(favoriteRepo, authService, appMetrics)

	e := httptransport.NewRouter(httptransport.RouterConfig{
		AllowOrigins: cfg.AllowOrigins,
		ServiceName:  cfg.OTelServiceName,
		Metrics:      appMetrics,
	})
	httptransport.RegisterHealth(e, profileService)
	httptransport.RegisterSwagger(e)
	httptransport.RegisterAuth(e, authService)
	httptransport.RegisterProfile(e, authService, profileService)
	httptransport.RegisterRecipes(e, authService, recipeService)
	httptransport.RegisterLikes(e, likeTracker)
	httptransport.RegisterFavorites(e, authService, favoriteService)
	httptransport.RegisterComments(e, authService, commentService)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown telemetry")
	}
	if sink != nil {
		if dropped := sink.Dropped(); dropped > 0 {
			log.Warn().Int64("dropped", dropped).Msg("log lines dropped by logstash sink")
		}
		_ = sink.Close()
	}
}
