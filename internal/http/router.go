package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jobtrackhq/jobtrack/internal/auth"
	"github.com/jobtrackhq/jobtrack/internal/cache"
	"github.com/jobtrackhq/jobtrack/internal/config"
	"github.com/jobtrackhq/jobtrack/internal/http/handlers"
	"github.com/jobtrackhq/jobtrack/internal/http/middlewares"
	"github.com/jobtrackhq/jobtrack/internal/observability"
	"github.com/jobtrackhq/jobtrack/internal/repo/postgres"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// NewRouter wires middleware, repositories and handlers. rdb may be nil, in
// which case auth rate limiting falls back to the in-process limiter.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, reg *prometheus.Registry, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("jobtrack-api"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	jobsRepo := postgres.NewJobsRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTLifetime)
	authMW := middlewares.NewAuthMiddleware(jwtManager, cfg.DemoUserID)

	statsCache := cache.New(30 * time.Second)

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, log, prom)
	jobsHandler := handlers.NewJobsHandler(jobsRepo, statsCache, log, prom)

	// login/register share one fixed window per client
	var authLimiter gin.HandlerFunc

	if rdb != nil {
		authLimiter = middlewares.NewRedisRateLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow).RateLimiterMiddleware(middlewares.KeyByIP)
	} else {
		authLimiter = middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow).RateLimiterMiddleware(middlewares.KeyByIP)
	}

	r.POST("/auth/register", authLimiter, authHandler.Register)
	r.POST("/auth/login", authLimiter, authHandler.Login)
	r.PATCH("/auth/updateUser", authMW.RequireAuth(), middlewares.BlockDemoUser(), authHandler.UpdateUser)

	jobs := r.Group("/jobs", authMW.RequireAuth())

	jobs.GET("", jobsHandler.GetAllJobs)
	jobs.POST("", middlewares.BlockDemoUser(), jobsHandler.CreateJob)
	jobs.GET("/stats", jobsHandler.ShowStats)
	jobs.GET("/:id", jobsHandler.GetJob)
	jobs.PATCH("/:id", middlewares.BlockDemoUser(), jobsHandler.UpdateJob)
	jobs.DELETE("/:id", middlewares.BlockDemoUser(), jobsHandler.DeleteJob)

	return r
}
