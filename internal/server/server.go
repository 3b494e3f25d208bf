// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"curiouslife/internal/config"
	"curiouslife/internal/database"
	"curiouslife/internal/mail"
	"curiouslife/internal/middleware"
	"curiouslife/internal/models"
	"curiouslife/internal/policy"
	"curiouslife/internal/repository"
	"curiouslife/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "curiouslife-api"
	tokenAudience = "curiouslife-client"
	sessionCookie = "jwt"
	sessionTTL    = 24 * time.Hour
)

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	app               *fiber.App
	promMiddleware    *fiberprometheus.FiberPrometheus
	mailer            mail.Mailer
	userRepo          repository.UserRepository
	blogRepo          repository.BlogRepository
	commentRepo       repository.CommentRepository
	bookmarkRepo      repository.BookmarkRepository
	userService       *service.UserService
	blogService       *service.BlogService
	commentService    *service.CommentService
	bookmarkService   *service.BookmarkService
	moderationService *service.ModerationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, mail.NewSMTPMailer(cfg)), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the DB.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, mailer mail.Mailer) *Server {
	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	prom := middleware.InitMetrics("curiouslife-api")

	server := &Server{
		config:         cfg,
		db:             db,
		promMiddleware: prom,
		mailer:         mailer,
		userRepo:       userRepo,
		blogRepo:       blogRepo,
		commentRepo:    commentRepo,
		bookmarkRepo:   bookmarkRepo,
	}
	server.userService = service.NewUserService(userRepo, blogRepo)
	server.blogService = service.NewBlogService(blogRepo)
	server.commentService = service.NewCommentService(commentRepo, blogRepo)
	server.bookmarkService = service.NewBookmarkService(bookmarkRepo, blogRepo)
	server.moderationService = service.NewModerationService(userRepo, blogRepo, commentRepo, bookmarkRepo)

	return server
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
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
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
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Envelope{
				Status:  "fail",
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Identity
	app.Post("/signup", s.Signup)
	app.Post("/login", s.Login)
	app.Post("/signout", s.Signout)
	app.Get("/me", s.AuthRequired(), s.Me)

	// Profile
	app.Get("/profile", s.AuthRequired(), s.GetProfile)
	app.Put("/editProfile", s.AuthRequired(), s.EditProfile)
	app.Put("/changePassword", s.AuthRequired(), s.ChangePassword)
	app.Put("/updateBio", s.AuthRequired(), s.UpdateBio)
	app.Get("/author/:authorId", s.OptionalAuth(), s.GetAuthorProfile)

	// Blogs. Public reads resolve the identity when a session cookie is
	// present so the liked flag reflects the caller; fixed segments are
	// registered before the generic /:id route.
	blogs := app.Group("/blogs")
	blogs.Get("/", s.OptionalAuth(), s.GetBlogs)
	blogs.Get("/recent", s.OptionalAuth(), s.GetRecentBlogs)
	blogs.Get("/popular", s.OptionalAuth(), s.GetPopularBlogs)
	blogs.Get("/category/:category", s.OptionalAuth(), s.GetBlogsByCategory)
	blogs.Get("/blogMe", s.AuthRequired(), s.GetMyBlogs)
	blogs.Get("/getSavedBlogs", s.AuthRequired(), s.GetSavedBlogs)

	blogs.Post("/createBlog", s.AuthRequired(), s.CreateBlog)
	blogs.Patch("/updateBlog/:id", s.AuthRequired(), s.UpdateBlog)
	blogs.Delete("/deleteBlog/:id", s.AuthRequired(), s.DeleteBlog)

	// Likes
	blogs.Post("/like/:blogId", s.AuthRequired(), s.ToggleLike)
	blogs.Get("/like-status/:blogId", s.OptionalAuth(), s.LikeStatus)

	// Comments
	blogs.Post("/comment/:blogId", s.AuthRequired(), s.AddComment)
	blogs.Put("/editComment/:commentId", s.AuthRequired(), s.EditComment)
	blogs.Delete("/deleteComment/:commentId", s.AuthRequired(), s.DeleteComment)

	// Bookmarks
	blogs.Post("/save/:blogId", s.AuthRequired(), s.SaveBlog)
	blogs.Delete("/unsave/:blogId", s.AuthRequired(), s.UnsaveBlog)

	// Generic /:id routes must come last
	blogs.Get("/:blogId/comments", s.OptionalAuth(), s.GetComments)
	blogs.Get("/:id", s.OptionalAuth(), s.GetBlog)

	// Admin
	admin := app.Group("/admin", s.AuthRequired(), s.AdminRequired())
	admin.Get("/reports", s.GetDashboardStats)
	admin.Get("/users", s.GetAllUsers)
	admin.Put("/denyBlog/user/:userId", s.DenyPosting)
	admin.Put("/allowBlog/user/:userId", s.AllowPosting)
	admin.Delete("/removeUser/user/:userId", s.RemoveUser)
	admin.Get("/authorActivity/user/:userId", s.GetAuthorActivity)
	admin.Get("/blogs", s.GetAdminBlogs)
	admin.Delete("/removeBlog/blog/:blogId", s.RemoveBlog)

	// Contact
	app.Post("/contact", s.Contact)
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
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns middleware that authenticates the session and loads
// the acting identity fresh from the credential store, so permission changes
// (forbid posting, role change) take effect on the next request.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := s.resolveIdentity(c)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		s.attachIdentity(c, identity)
		return c.Next()
	}
}

// OptionalAuth resolves the identity when credentials are present but never
// rejects the request; failures leave the request anonymous.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity, err := s.resolveIdentity(c); err == nil {
			s.attachIdentity(c, identity)
		}
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so the identity is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := policy.CanModerate(s.identity(c)); err != nil {
			return models.RespondWithError(c, models.HTTPStatus(err), err)
		}
		return c.Next()
	}
}

func (s *Server) attachIdentity(c *fiber.Ctx, identity policy.Identity) {
	c.Locals("identity", identity)
	c.Locals("userID", identity.UserID)
	ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, identity.UserID)
	c.SetUserContext(ctx)
}

// resolveIdentity validates the session token (cookie first, then Bearer
// header) and loads the user row behind it.
func (s *Server) resolveIdentity(c *fiber.Ctx) (policy.Identity, error) {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return policy.Anonymous, models.NewUnauthenticatedError("Unauthorized. Please log in.")
	}

	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			return []byte(s.config.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return policy.Anonymous, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Anonymous, models.NewUnauthenticatedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return policy.Anonymous, models.NewUnauthenticatedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return policy.Anonymous, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	user, err := s.userRepo.GetByID(c.UserContext(), uint(userID))
	if err != nil {
		return policy.Anonymous, models.NewUnauthenticatedError("Account no longer exists")
	}
	return policy.FromUser(user), nil
}

// identity returns the acting identity attached by the auth middleware.
func (s *Server) identity(c *fiber.Ctx) policy.Identity {
	if v, ok := c.Locals("identity").(policy.Identity); ok {
		return v
	}
	return policy.Anonymous
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Curious Life API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
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
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
