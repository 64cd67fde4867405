package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jobsite"
	"jobsite/internal/api/handler/endpoints"
	"jobsite/internal/api/models"
	"jobsite/internal/api/repo"
	"jobsite/internal/api/service"
	"jobsite/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	jobsite.InitConfig(".env")
	cfg := jobsite.GetConfig()
	gin.SetMode(gin.ReleaseMode)

	if cfg.Mode == "dev" {
		if err := jobsite.DB.AutoMigrate(models.All()...); err != nil {
			jobsite.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		jobsite.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(cfg.ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.MaxMultipartMemory = cfg.UploadMaxBytes
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	files, err := initFileStore(router, cfg.Storage)
	if err != nil {
		jobsite.Logger.Fatal().Err(err).Msg("Failed to initialise file store")
	}

	initAPI(router, cfg, files, initViewCache(cfg))

	if jobsite.NATS != nil {
		defer jobsite.NATS.Close()
	}

	jobsite.Logger.Debug().Msgf("Starting job site API on port %s", cfg.ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		jobsite.Logger.Fatal().Msg(err.Error())
	}
}

func initFileStore(router *graceful.Graceful, cfg jobsite.StorageConfig) (pkg.FileStore, error) {
	if cfg.Driver == "s3" {
		return pkg.NewS3FileStore(pkg.S3Options{
			Endpoint:      cfg.Endpoint,
			AccessKey:     cfg.AccessKey,
			SecretKey:     cfg.SecretKey,
			UseSSL:        cfg.UseSSL,
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			PublicBaseURL: cfg.PublicBaseURL,
		}, jobsite.Logger)
	}

	store, err := pkg.NewLocalFileStore(cfg.LocalDir, cfg.Bucket, cfg.PublicBaseURL+"/storage", jobsite.Logger)
	if err != nil {
		return nil, err
	}
	router.Static("/storage/"+cfg.Bucket, store.Dir())
	return store, nil
}

func initViewCache(cfg jobsite.AppConfig) pkg.ViewCache {
	var views pkg.ViewCache = pkg.NewNopViewCache()
	if jobsite.Redis != nil {
		views = pkg.NewRedisViewCache(jobsite.Redis, cfg.RedisConfig.TTL, jobsite.Logger)
	}
	if jobsite.NATS != nil {
		views = pkg.WithInvalidators(views, pkg.NewNATSInvalidator(jobsite.NATS, jobsite.Logger))
	}
	return views
}

func initAPI(router *graceful.Graceful, cfg jobsite.AppConfig, files pkg.FileStore, views pkg.ViewCache) {
	userRepo := repo.NewUserRepository(jobsite.DB)
	profileRepo := repo.NewProfileRepository(jobsite.DB)
	jobRepo := repo.NewJobRepository(jobsite.DB)
	clientRepo := repo.NewClientRepository(jobsite.DB)

	guard := service.NewGuard(profileRepo, jobsite.Logger)
	userService := service.NewUserService(userRepo, guard, service.TokenConfig{
		Secret:            cfg.JWTConfig.Secret,
		Expiration:        cfg.JWTConfig.Expiration,
		RefreshExpiration: cfg.JWTConfig.RefreshExpiration,
	}, jobsite.Logger)
	jobService := service.NewJobService(jobRepo, files, views, guard, jobsite.Logger)
	clientService := service.NewClientService(clientRepo, guard, jobsite.Logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	endpoints.AuthHandler(router, userService, cfg.JWTConfig.Secret, jobsite.Logger)
	endpoints.PublicJobHandler(router, jobService, jobsite.Logger)
	endpoints.AdminJobHandler(router, jobService, clientService, guard, endpoints.AdminConfig{
		JWTSecret:      cfg.JWTConfig.Secret,
		UploadMaxBytes: cfg.UploadMaxBytes,
	}, jobsite.Logger)
}
