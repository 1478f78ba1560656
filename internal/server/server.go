// Package server contains the HTTP handlers and page rendering for the forum.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	_ "bridgeforum/docs" // swagger docs
	"bridgeforum/internal/cache"
	"bridgeforum/internal/config"
	"bridgeforum/internal/database"
	"bridgeforum/internal/featureflags"
	"bridgeforum/internal/mailer"
	"bridgeforum/internal/middleware"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/service"
	"bridgeforum/internal/session"
	"bridgeforum/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the external collaborators a Server can be given instead of building them from config.
type Deps struct {
	Storage storage.Storage
	Mailer  mailer.Mailer
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *session.Store
	store          storage.Storage
	featureFlags   *featureflags.Manager

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository

	authService     *service.AuthService
	postService     *service.PostService
	commentService  *service.CommentService
	userService     *service.UserService
	feedbackService *service.FeedbackService
	reminderService *service.ReminderService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient(), Deps{})
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Storage and mail drivers missing from deps are built from cfg.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, deps Deps) (*Server, error) {
	if deps.Storage == nil {
		store, err := storage.New(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("image storage: %w", err)
		}
		deps.Storage = store
	}
	if deps.Mailer == nil {
		m, err := mailer.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("mailer: %w", err)
		}
		deps.Mailer = m
	}
	templates, err := mailer.NewTemplates()
	if err != nil {
		return nil, fmt.Errorf("mail templates: %w", err)
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("bridgeforum"),
		sessions:       session.New(cfg, redisClient),
		store:          deps.Storage,
		featureFlags:   flags,
		userRepo:       repository.NewUserRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
	}

	images := service.NewImageService(deps.Storage, cfg, flags)
	server.authService = service.NewAuthService(server.userRepo)
	server.postService = service.NewPostService(server.postRepo, images)
	server.commentService = service.NewCommentService(server.commentRepo, server.postRepo, images)
	server.userService = service.NewUserService(server.userRepo, images)
	server.feedbackService = service.NewFeedbackService(server.postRepo, server.userRepo, deps.Mailer, templates, flags,
		service.FeedbackOptions{NotifyTo: cfg.FeedbackNotifyEmail, PublicURL: cfg.PublicURL})
	server.reminderService = service.NewReminderService(server.userRepo, deps.Mailer, templates, flags, cfg.PublicURL)

	return server, nil
}

// Reminders exposes the reminder batch for the scheduler.
func (s *Server) Reminders() *service.ReminderService {
	return s.reminderService
}

// FeatureFlags returns the flags the server was built with.
func (s *Server) FeatureFlags() *featureflags.Manager {
	return s.featureFlags
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Session user, before the context middleware copies it into the request context
	app.Use(s.sessions.LoadUser(s.userRepo))

	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers. Uploaded images may live on an S3 host and the swagger UI runs inline
	// scripts, so the embedder policy is relaxed and the CSP skips the docs.
	app.Use(helmet.New(helmet.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api-docs")
		},
		ContentSecurityPolicy:     "default-src 'self'; img-src 'self' data: http: https:; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'",
		CrossOriginEmbedderPolicy: "unsafe-none",
		CrossOriginResourcePolicy: "same-site",
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	limiterConfig := limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/health") || strings.HasPrefix(c.Path(), storage.PublicPrefix)
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Demasiadas peticiones, inténtalo más tarde.")
		},
	}
	if s.redis != nil {
		limiterConfig.Storage = cache.NewPrefixedStorage(s.redis, cache.LimiterKeyPrefix)
	}
	app.Use(limiter.New(limiterConfig))

	// HTML forms send PUT through POST + _method
	app.Use(middleware.MethodOverride())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// API documentation
	app.Get("/api-docs", func(c *fiber.Ctx) error {
		return c.Redirect("/api-docs/index.html", fiber.StatusMovedPermanently)
	})
	app.Get("/api-docs/*", swagger.HandlerDefault)

	// Locally stored uploads
	if local, ok := s.store.(*storage.LocalStorage); ok {
		app.Static(storage.PublicPrefix, local.Dir, fiber.Static{MaxAge: 86400})
	}

	auth := app.Group("/auth")
	auth.Get("/login-page", s.LoginPage)
	auth.Get("/register-page", s.RegisterPage)
	auth.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Everything below requires a session
	protected := app.Group("", middleware.RequireUser())
	protected.Get("/", s.Homepage)

	forum := protected.Group("/forum")
	forum.Get("/", s.ListPosts)
	forum.Post("/create-post", middleware.RateLimit(s.redis, 20, time.Minute, "create_post"), s.CreatePost)
	forum.Get("/post/:id", s.GetPost)
	forum.Post("/post/:id/edit", s.UpdatePost)
	forum.Post("/post/:id/delete", s.DeletePost)

	comments := protected.Group("/comments")
	commentLimit := middleware.RateLimit(s.redis, 20, time.Minute, "comment")
	comments.Post("/post/:id/comment", commentLimit, s.CreateComment)
	comments.Post("/comment/:id/reply", commentLimit, s.ReplyToComment)
	comments.Post("/comment/:id/edit", s.UpdateComment)
	comments.Post("/comment/:id/delete", s.DeleteComment)

	profile := protected.Group("/profile")
	profile.Get("/", s.GetProfile)
	profile.Get("/update", s.ProfileUpdatePage)
	profile.Put("/", s.UpdateProfile)
	profile.Post("/", s.UpdateProfile)

	protected.Get("/usuarios", s.ListUsers)

	feedback := protected.Group("/feedback")
	feedback.Post("/", s.SubmitFeedback)
	feedback.Get("/students", middleware.RequireAdmin(), s.FeedbackReport)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	// Sessions fall back to memory without Redis, so it only degrades readiness.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	switch {
	case dbStatus == "unhealthy":
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	case redisStatus != "healthy":
		overallStatus = "degraded"
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

// App builds the Fiber application with views, middleware and routes. It does not listen.
func (s *Server) App() (*fiber.App, error) {
	engine, err := newViewEngine()
	if err != nil {
		return nil, err
	}

	bodyLimit := s.config.ImageMaxUploadSizeMB
	if bodyLimit <= 0 {
		bodyLimit = service.DefaultImageMaxUploadSizeMB
	}

	app := fiber.New(fiber.Config{
		AppName:      "bridgeforum",
		Views:        engine,
		ViewsLayout:  "layouts/main",
		BodyLimit:    (bodyLimit + 1) * 1024 * 1024,
		ErrorHandler: s.errorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app, nil
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	app, err := s.App()
	if err != nil {
		return err
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}
	if s.feedbackService != nil {
		s.feedbackService.Wait()
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
