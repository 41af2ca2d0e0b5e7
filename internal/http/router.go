package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hiteshgarg/medium-blog/internal/auth"
	"github.com/hiteshgarg/medium-blog/internal/cache"
	"github.com/hiteshgarg/medium-blog/internal/config"
	"github.com/hiteshgarg/medium-blog/internal/http/handlers"
	"github.com/hiteshgarg/medium-blog/internal/http/middlewares"
	"github.com/hiteshgarg/medium-blog/internal/observability"
	"github.com/hiteshgarg/medium-blog/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the postgres-backed service.
func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	usersRepo := postgres.NewUsersRepo(pool, prom)
	postsRepo := postgres.NewPostsRepo(pool, prom)

	return newRouter(log, cfg, usersRepo, postsRepo, ping, reg, prom)
}

// NewRouterWith takes the store contracts directly so tests can run the full
// stack against in-memory repositories.
func NewRouterWith(log *slog.Logger, cfg config.Config, users handlers.UserStore, posts handlers.PostStore, ping func() error) *gin.Engine {
	reg := prometheus.NewRegistry()

	return newRouter(log, cfg, users, posts, ping, reg, observability.NewProm(reg))
}

func newRouter(log *slog.Logger, cfg config.Config, users handlers.UserStore, posts handlers.PostStore, ping func() error, reg *prometheus.Registry, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(otelgin.Middleware("blog-api"))
	r.Use(middlewares.Metrics(prom))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	// health + metrics
	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	authGate := middlewares.NewAuthMiddleware(jwtManager)

	listCache := cache.New(5 * time.Second)

	usersHandler := handlers.NewUsersHandler(users, jwtManager)
	blogsHandler := handlers.NewBlogsHandler(posts, listCache, cfg.StrictOwnership)

	// public routes
	userRoutes := r.Group("/user")
	userRoutes.POST("/signup", usersHandler.Signup)
	userRoutes.POST("/signin", usersHandler.Signin)

	// every blog route sits behind the auth gate, reads included
	blogRoutes := r.Group("/blog", authGate.RequireAuth())
	blogRoutes.POST("", blogsHandler.CreateBlog)
	blogRoutes.PUT("", blogsHandler.UpdateBlog)
	blogRoutes.GET("/bulk", blogsHandler.ListBlogs)
	blogRoutes.GET("/:id", blogsHandler.GetBlogByID)

	return r
}
