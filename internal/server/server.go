// Package server contains the HTML and JSON handlers of the blog.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/featureflags"
	"yatube/internal/middleware"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/web"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultOrigins = "http://localhost:8000,http://127.0.0.1:8000"

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager
	rateLimiter    *middleware.RateLimiter
	pages          *service.PageService
	posts          *service.PostService
	users          *service.UserService
}

// NewServer connects to the database and Redis described by cfg and builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis is optional: a nil client disables caching and token revocation.
	cache.InitRedis(cfg.RedisURL)

	return newServer(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	cache.SetClient(redisClient)
	return newServer(cfg, db, redisClient), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("yatube"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		rateLimiter:    middleware.NewRateLimiter(redisClient, cfg.Env),
		pages:          service.NewPageService(postRepo, groupRepo, userRepo, cfg.PageSize),
		posts:          service.NewPostService(postRepo, groupRepo),
		users:          service.NewUserService(userRepo),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "Yatube",
		Views:        web.Engine(),
		ErrorHandler: s.handleError,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	s.SetupMiddleware(s.app)
	s.SetupRoutes(s.app)

	return s
}

// App returns the fiber application, for tests and embedding.
func (s *Server) App() *fiber.App {
	return s.app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Copies request and trace IDs into the user context for the logger.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" || origins == "*" {
		origins = defaultOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later.")
		},
	}))

	app.Use(s.resolveViewer())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Yatube Metrics Dashboard",
	}))

	jsonAPI := s.requireFlag(featureflags.JSONAPI)
	api.Get("/posts", jsonAPI, s.APIIndex)
	api.Get("/posts/:id", jsonAPI, s.withViewer(s.APIPostDetail))
	api.Get("/groups/:slug/posts", jsonAPI, s.APIGroupPosts)
	api.Get("/profile/:username/posts", jsonAPI, s.APIProfilePosts)

	auth := app.Group("/auth")
	auth.Get("/signup/", s.withViewer(s.SignupForm))
	auth.Post("/signup/",
		s.rateLimiter.Limit("signup", 5, 10*time.Minute, middleware.FailOpen),
		s.withViewer(s.Signup))
	auth.Get("/login/", s.withViewer(s.LoginForm))
	auth.Post("/login/",
		s.rateLimiter.Limit("login", 10, time.Minute, middleware.FailOpen),
		s.withViewer(s.Login))
	auth.Get("/logout/", s.Logout)
	auth.Post("/logout/", s.Logout)

	app.Get("/", s.withViewer(s.Index))
	app.Get("/group/:slug/", s.withViewer(s.GroupPosts))
	app.Get("/profile/:username/", s.withViewer(s.Profile))
	app.Get("/posts/:id/", s.withViewer(s.PostDetail))

	app.Get("/create/", s.loginRequired(s.CreatePostForm))
	app.Post("/create/", s.loginRequired(s.CreatePost))
	app.Get("/posts/:id/edit/", s.loginRequired(s.EditPostForm))
	app.Post("/posts/:id/edit/", s.loginRequired(s.EditPost))

	app.Use(s.NotFound)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so its
// absence is reported but does not fail the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start listens on the configured port until the app is shut down.
func (s *Server) Start() error {
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
