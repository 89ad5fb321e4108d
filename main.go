package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/aalokdeep/workbench-api/handlers"
	"github.com/aalokdeep/workbench-api/internal/auth"
	"github.com/aalokdeep/workbench-api/internal/blog"
	"github.com/aalokdeep/workbench-api/internal/config"
	"github.com/aalokdeep/workbench-api/internal/httpapi"
	"github.com/aalokdeep/workbench-api/internal/project"
	"github.com/aalokdeep/workbench-api/internal/storage"
	"github.com/aalokdeep/workbench-api/internal/store"
	"github.com/aalokdeep/workbench-api/pkg/logger"
	"github.com/aalokdeep/workbench-api/pkg/metrics"
	"github.com/aalokdeep/workbench-api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: level=%s mongo=%v storage=%v redis=%v admin=%s",
		logger.LevelString(), cfg.MongoDB.URI != "", cfg.Storage.Endpoint != "", cfg.Redis.Host != "", cfg.Admin.Handle)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(httpapi.Middleware())

	// unmatched routes and methods still answer with the JSON envelope
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		httpapi.Error(c, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
	})
	r.NoRoute(func(c *gin.Context) {
		httpapi.Error(c, "NOT_FOUND", "Resource not found", http.StatusNotFound)
	})

	// optional global rate limiter, Redis-backed when configured
	if cfg.RateLimit.Enabled {
		var rdb *redis.Client
		if cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
			rdb = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			if err := rdb.Ping(context.Background()).Err(); err != nil {
				logger.Warnf("redis unavailable (%s:%s), falling back to in-memory limiter: %v", cfg.Redis.Host, cfg.Redis.Port, err)
				rdb = nil
			}
		}
		if rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// store gateway connects lazily on first request; nothing to fail here
	gateway := store.NewGateway(cfg.MongoDB)
	defer func() { _ = gateway.Close(context.Background()) }()

	// upload credential issuer is optional: without storage config the
	// upload-token route reports a configuration error per request
	var issuer storage.CredentialIssuer
	if minioIssuer, err := storage.NewMinIOIssuer(cfg.Storage); err != nil {
		logger.Warnf("upload credential issuer disabled: %v", err)
	} else {
		if err := minioIssuer.EnsureBucket(context.Background()); err != nil {
			logger.Warnf("could not ensure storage bucket %q: %v", cfg.Storage.Bucket, err)
		}
		issuer = minioIssuer
	}

	requireAdmin := auth.RequireAdmin(auth.NewHandleAllowlist(cfg.Admin.Handle))

	api := r.Group("/api")
	project.NewHandler(project.NewMongoRepository(gateway), issuer).Register(api, requireAdmin)
	blog.NewHandler(blog.NewMongoRepository(gateway)).Register(api)

	handlers.RegisterHealth(r, cfg, startTime)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting content API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
