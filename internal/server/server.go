// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	_ "critica/docs" // swagger docs
	"critica/internal/cache"
	"critica/internal/config"
	"critica/internal/database"
	"critica/internal/mailer"
	"critica/internal/middleware"
	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"
	"critica/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	titleRepo    repository.TitleRepository
	reviewRepo   repository.ReviewRepository
	commentRepo  repository.CommentRepository

	authService    *service.AuthService
	userService    *service.UserService
	catalogService *service.CatalogService
	titleService   *service.TitleService
	reviewService  *service.ReviewService
	commentService *service.CommentService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	m, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, m)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis/mail.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, m mailer.Mailer) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("critica-api"),
		userRepo:       repository.NewUserRepository(db),
		categoryRepo:   repository.NewCategoryRepository(db),
		genreRepo:      repository.NewGenreRepository(db),
		titleRepo:      repository.NewTitleRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
	}

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	server.authService = service.NewAuthService(server.userRepo, m, cfg.JWTSecret, tokenTTL)
	server.userService = service.NewUserService(server.userRepo)
	server.catalogService = service.NewCatalogService(server.categoryRepo, server.genreRepo)
	server.titleService = service.NewTitleService(server.titleRepo, server.categoryRepo, server.genreRepo)
	server.reviewService = service.NewReviewService(server.reviewRepo, server.titleRepo)
	server.commentService = service.NewCommentService(server.commentRepo, server.reviewRepo, server.titleRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
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
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/metrics-ui", monitor.New())
	app.Get("/swagger/*", swagger.HandlerDefault)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	// Tight per-IP limit on the auth endpoints; each signup sends mail.
	auth := api.Group("/auth", middleware.RateLimit(s.redis, 10, time.Minute, "auth"))
	auth.Post("/signup/", s.Signup)
	auth.Post("/token/", s.IssueToken)

	categories := api.Group("/categories")
	categories.Get("/", s.ListCategories)
	categories.Post("/", s.AuthRequired(), s.CreateCategory)
	categories.Delete("/:slug/", s.AuthRequired(), s.DeleteCategory)

	genres := api.Group("/genres")
	genres.Get("/", s.ListGenres)
	genres.Post("/", s.AuthRequired(), s.CreateGenre)
	genres.Delete("/:slug/", s.AuthRequired(), s.DeleteGenre)

	titles := api.Group("/titles")
	titles.Get("/", s.ListTitles)
	titles.Post("/", s.AuthRequired(), s.CreateTitle)
	titles.Get("/:title_id/", s.GetTitle)
	titles.Patch("/:title_id/", s.AuthRequired(), s.UpdateTitle)
	titles.Delete("/:title_id/", s.AuthRequired(), s.DeleteTitle)

	reviews := titles.Group("/:title_id/reviews")
	reviews.Get("/", s.ListReviews)
	reviews.Post("/", s.AuthRequired(), s.CreateReview)
	reviews.Get("/:review_id/", s.GetReview)
	reviews.Patch("/:review_id/", s.AuthRequired(), s.UpdateReview)
	reviews.Delete("/:review_id/", s.AuthRequired(), s.DeleteReview)

	comments := reviews.Group("/:review_id/comments")
	comments.Get("/", s.ListComments)
	comments.Post("/", s.AuthRequired(), s.CreateComment)
	comments.Get("/:comment_id/", s.GetComment)
	comments.Patch("/:comment_id/", s.AuthRequired(), s.UpdateComment)
	comments.Delete("/:comment_id/", s.AuthRequired(), s.DeleteComment)

	users := api.Group("/users", s.AuthRequired())
	// The /me routes must be registered before /:username.
	users.Get("/me/", s.GetMe)
	users.Patch("/me/", s.UpdateMe)
	users.Get("/", s.ListUsers)
	users.Post("/", s.CreateUser)
	users.Get("/:username/", s.GetUser)
	users.Patch("/:username/", s.UpdateUser)
	users.Delete("/:username/", s.DeleteUser)
}

// HealthCheck godoc
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck reports whether downstream dependencies are reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		checks["database"] = "unreachable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if s.redis != nil {
		if err := s.redis.Ping(c.Context()).Err(); err != nil {
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"status": checks})
}

// AuthRequired returns the authentication middleware. It validates the
// bearer token and loads the caller's current record, so a role change
// takes effect on the next request rather than at token renewal.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid token claims"))
		}
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "critica-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "critica-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(float64)
		if !ok || sub <= 0 {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid subject claim"))
		}
		userID := uint(sub)

		user, err := s.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Unknown user"))
		}

		c.Locals("userID", userID)
		c.Locals("caller", policy.CallerFor(user))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Critica API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, err)
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			return err
		}
	}
	return nil
}
