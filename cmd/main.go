package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nareshkanna-nk/Young-wealth/config"
	"github.com/nareshkanna-nk/Young-wealth/internal/container"
	"github.com/nareshkanna-nk/Young-wealth/internal/domain/repository"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/memory"
	pginfra "github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/postgres"
	"github.com/nareshkanna-nk/Young-wealth/internal/infrastructure/upload"
	"github.com/nareshkanna-nk/Young-wealth/internal/router"
	"github.com/nareshkanna-nk/Young-wealth/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	// Stores
	var (
		users   repository.UserRepository
		courses repository.CourseRepository
		pgPool  *pgxpool.Pool
	)
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		cleanups = append(cleanups, pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		pgPool = pool
		users = pginfra.NewUserRepository(pool)
		courses = pginfra.NewCourseRepository(pool)
	case "memory":
		users = memory.NewUserRepository()
		courses = memory.NewCourseRepository()
		logger.Warn("using in-memory store; data is lost on restart")
	default:
		log.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	c := container.New(cfg, logger, users, courses, nil)
	c.PGPool = pgPool

	// Uploads
	switch cfg.UploadDriver {
	case "gcs":
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		cleanups = append(cleanups, func() { _ = gcsClient.Close() })
		c.GCS = gcsClient
		c.Uploads = upload.NewGCS(gcsClient, cfg.GCSBucket)
	default:
		local, err := upload.NewLocal(cfg.UploadDir, cfg.UploadPublicPrefix)
		if err != nil {
			log.Fatalf("failed to prepare upload dir: %v", err)
		}
		c.Uploads = local
	}

	// Redis (rate limiting); per-process limiter otherwise
	if cfg.RedisEnabled {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			helpers.LogWarn(logger, "redis unavailable, using in-process rate limits", err, logrus.Fields{"addr": cfg.RedisAddr})
			_ = rdb.Close()
		} else {
			cleanups = append(cleanups, func() { _ = rdb.Close() })
			c.Redis = rdb
		}
	}

	// Elasticsearch (course search)
	if cfg.ElasticsearchEnabled {
		es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err == nil {
			err = helpers.PingES(ctx, es)
		}
		if err != nil {
			helpers.LogWarn(logger, "elasticsearch unavailable, search disabled", err, nil)
		} else {
			c.ES = es
		}
	}

	// RabbitMQ (email jobs)
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, emails disabled", err, logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
		} else {
			cleanups = append(cleanups, pub.Close)
			c.RabbitPub = pub
		}
	}

	c.Build()

	// Bootstrap admin
	if _, created, err := c.UserSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatalf("failed to ensure admin: %v", err)
	} else if created {
		helpers.LogInfo(logger, "admin account created", logrus.Fields{"email": cfg.AdminEmail})
	}

	r := router.New(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
