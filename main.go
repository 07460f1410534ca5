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

	"github.com/wonhyungLee/tax-board/handlers"
	"github.com/wonhyungLee/tax-board/internal/board/handler"
	"github.com/wonhyungLee/tax-board/internal/board/repository"
	"github.com/wonhyungLee/tax-board/internal/board/service"
	"github.com/wonhyungLee/tax-board/internal/config"
	"github.com/wonhyungLee/tax-board/internal/database"
	"github.com/wonhyungLee/tax-board/internal/filter"
	"github.com/wonhyungLee/tax-board/internal/ratelimit"
	"github.com/wonhyungLee/tax-board/internal/schema"
	"github.com/wonhyungLee/tax-board/pkg/logger"
	"github.com/wonhyungLee/tax-board/pkg/metrics"
	"github.com/wonhyungLee/tax-board/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: db=%s redis=%v", cfg.Database.Path, cfg.Redis.Host != "")

	r := gin.New()

	// Lightweight CORS middleware: the static frontend is served from a
	// different origin in dev.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Optional coarse flood guard in front of the per-write cooldowns
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// Relational store is mandatory; refuse to start without it.
	db, err := database.OpenSQLite(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open board database: %v", err)
	}
	defer db.Close()

	mgr := schema.NewManager(db)
	ctx := context.Background()
	if err := mgr.Ensure(ctx); err != nil {
		logger.Fatalf("failed to ensure board schema: %v", err)
	}
	logger.Infof("board schema ready")

	// Connect to Redis when configured; without it the write cooldowns
	// degrade open (every request granted).
	var limiter ratelimit.Limiter = ratelimit.Noop{}
	var boardRedis *redis.Client
	if cfg.Redis.Host != "" {
		boardRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := boardRedis.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v; write cooldowns disabled", cfg.Redis.Host, cfg.Redis.Port, err)
			boardRedis = nil
		} else {
			limiter = ratelimit.NewRedisLimiter(boardRedis, "rate:")
			logger.Infof("Connected to Redis for write cooldowns: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	} else {
		logger.Warnf("REDIS_HOST not set; write cooldowns disabled")
	}

	repo := repository.New(db)
	svc := service.New(repo, mgr, filter.Default(), limiter, service.Options{
		PasswordPepper:  cfg.Board.PasswordPepper,
		PostCooldown:    cfg.Board.PostCooldown,
		CommentCooldown: cfg.Board.CommentCooldown,
	})
	handler.RegisterBoardRoutes(r, svc, handler.Options{
		IPPepper:    cfg.Board.IPPepper,
		DebugErrors: cfg.Board.DebugErrors,
	})
	handlers.RegisterSwagger(r)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if err := db.PingContext(c.Request.Context()); err != nil {
			deps["storage"] = false
			ready = false
		} else {
			deps["storage"] = true
		}

		// Redis is optional: report reachability but stay ready without it.
		if boardRedis != nil {
			deps["redis"] = boardRedis.Ping(c.Request.Context()).Err() == nil
		} else {
			deps["redis"] = cfg.Redis.Host == ""
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting board service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
