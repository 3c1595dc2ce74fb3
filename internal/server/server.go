// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"artcanvas/internal/cache"
	"artcanvas/internal/config"
	"artcanvas/internal/database"
	"artcanvas/internal/middleware"
	"artcanvas/internal/models"
	"artcanvas/internal/repository"
	"artcanvas/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenCookieName = "token"
	tokenLifetime   = 24 * time.Hour
	tokenIssuer     = "artcanvas-api"
	tokenAudience   = "artcanvas-client"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config       *config.Config
	db           *gorm.DB
	redis        *redis.Client
	userRepo     repository.UserRepository
	paintingRepo repository.PaintingRepository
	commentRepo  repository.CommentRepository
	boardRepo    repository.BoardRepository
	images       *service.ImageService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDB(cfg, db, cache.GetClient()), nil
}

// NewServerWithDB creates a server around an existing database handle.
// Tests use this with an in-memory database.
func NewServerWithDB(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	return &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     repository.NewUserRepository(db),
		paintingRepo: repository.NewPaintingRepository(db),
		commentRepo:  repository.NewCommentRepository(db),
		boardRepo:    repository.NewBoardRepository(db),
		images:       service.NewImageService(cfg),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Context propagation for the structured logger
	app.Use(middleware.ContextMiddleware())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
		Next: func(c *fiber.Ctx) bool {
			return s.config.Env == "test" || s.config.Env == "development"
		},
	}))

	// CORS middleware
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", s.HealthCheck)

	// Runtime metrics dashboard
	api.Get("/metrics", monitor.New(monitor.Config{
		Title: "ArtCanvas Backend Metrics",
	}))

	// Development fallback for locally stored uploads
	if s.config.ImageHostURL == "" && s.config.ImageUploadDir != "" {
		app.Static("/uploads", s.config.ImageUploadDir)
	}

	// User routes
	user := api.Group("/user")
	user.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	user.Get("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	user.Get("/logout", s.AuthRequired(), s.Logout)
	user.Get("/profile", s.AuthRequired(), s.GetProfile)
	user.Patch("/update", s.AuthRequired(), s.UpdateProfile)

	// Painting routes. Register the named routes before the generic
	// /:paintingId routes so they are matched first.
	painting := api.Group("/painting")
	painting.Post("/create-painting", s.AuthRequired(), middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_painting"), s.UploadPainting)
	painting.Get("/all-paintings", s.GetAllPaintings)
	painting.Get("/single/:id", s.AuthRequired(), s.GetPaintingByID)
	painting.Get("/user-paintings", s.AuthRequired(), s.GetUserPaintings)
	painting.Patch("/user/:id", s.AuthRequired(), s.UpdatePainting)
	painting.Post("/:paintingId", s.AuthRequired(), s.ToggleSavePainting)
	painting.Put("/:paintingId", s.AuthRequired(), s.ToggleLikePainting)
	painting.Delete("/:paintingId", s.AuthRequired(), s.DeletePainting)

	// Comment routes
	comment := api.Group("/comment")
	comment.Post("/:paintingId/comment", s.AuthRequired(), middleware.RateLimit(s.redis, 15, time.Minute, "create_comment"), s.AddComment)
	comment.Get("/:paintingId/comment", s.GetComments)
	comment.Delete("/:commentId", s.AuthRequired(), s.DeleteComment)

	// Board routes
	board := api.Group("/board", s.AuthRequired())
	board.Post("/create", s.CreateBoard)
	board.Get("/", s.GetUserBoards)
	board.Put("/add-painting", s.AddPaintingToBoard)
	board.Put("/remove-painting", s.RemovePaintingFromBoard)
	board.Get("/:boardId", s.GetBoardByID)
	board.Delete("/:boardId", s.DeleteBoard)
}

// HealthCheck handles health check requests
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "ArtCanvas",
		"status":  overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. The session token is an
// HS256 JWT delivered in an http-only cookie; the referenced user is resolved
// from the store on every request, so a deleted account is rejected even with
// a valid signature.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(tokenCookieName)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Please login first"))
		}

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		// Extract claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// Validate issuer and audience
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		// Extract user ID from subject claim
		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Resolve the user so downstream handlers get a live identity
		user, err := s.userRepo.GetByID(c.Context(), uint(userID))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User no longer exists"))
		}
		user.Password = ""

		c.Locals("userID", uint(userID))
		c.Locals("currentUser", user)

		return c.Next()
	}
}

// NewApp builds the Fiber application with all middleware and routes wired.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "ArtCanvas API",
		BodyLimit: 10 * 1024 * 1024, // matches the image upload ceiling
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Shutdown gracefully shuts down the server's resources.
func (s *Server) Shutdown(ctx context.Context) error {
	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
