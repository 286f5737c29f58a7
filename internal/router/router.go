package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/handler"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/middleware"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/response"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	AdminUser  *handler.AdminUserHandler
	Catalog    *handler.CatalogHandler
	Job        *handler.JobHandler
	Submission *handler.SubmissionHandler
	File       *handler.FileHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	loginLimiter *middleware.LoginLimiter,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.GET("/jobs", handlers.Job.ListPublic)
		public.POST("/contact", handlers.Submission.Contact)
		public.POST("/apply", handlers.Submission.Apply)
		public.GET("/files/datasheets/*path", handlers.File.ServeDatasheet)
	}

	// ─── 2. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/logout", handlers.Auth.Logout)
		auth.POST("/logout", handlers.Auth.Logout)

		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.POST("/change-password", middleware.RequireAuth(authService), handlers.Auth.ChangePassword)
	}

	// Resume blobs carry applicant personal data, so the group hangs off
	// the authenticated chain rather than the public one.
	files := router.Group("/api/v1/files")
	files.Use(middleware.RequireAuth(authService))
	{
		files.GET("/resumes/*path", handlers.File.ServeResume)
	}

	// ─── 3. Admin Group (Session + Role Gates) ─────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(authService))
	{
		// Admin account management (superadmin/agency/admin on their own
		// allow-lists; viewers rejected outright).
		adminAPI.GET("/users", middleware.RequireUserManager(), handlers.AdminUser.List)
		adminAPI.POST("/users", middleware.RequireUserManager(), handlers.AdminUser.Create)
		adminAPI.PUT("/users/:id", middleware.RequireUserManager(), handlers.AdminUser.Update)
		adminAPI.DELETE("/users/:id", middleware.RequireUserManager(), handlers.AdminUser.Delete)

		// Product catalog.
		adminAPI.GET("/categories", handlers.Catalog.ListCategories)
		adminAPI.POST("/categories", middleware.RequireContentWriter(), handlers.Catalog.CreateCategory)
		adminAPI.PUT("/categories/:id", middleware.RequireContentWriter(), handlers.Catalog.UpdateCategory)
		adminAPI.DELETE("/categories/:id", middleware.RequireContentWriter(), handlers.Catalog.DeleteCategory)

		adminAPI.GET("/products", handlers.Catalog.ListProducts)
		adminAPI.GET("/products/:id", handlers.Catalog.GetProduct)
		adminAPI.POST("/products", middleware.RequireContentWriter(), handlers.Catalog.CreateProduct)
		adminAPI.PUT("/products/:id", middleware.RequireContentWriter(), handlers.Catalog.UpdateProduct)
		adminAPI.DELETE("/products/:id", middleware.RequireContentWriter(), handlers.Catalog.DeleteProduct)

		// Job postings.
		adminAPI.GET("/jobs", handlers.Job.List)
		adminAPI.POST("/jobs", middleware.RequireContentWriter(), handlers.Job.Create)
		adminAPI.PUT("/jobs/:id", middleware.RequireContentWriter(), handlers.Job.Update)
		adminAPI.DELETE("/jobs/:id", middleware.RequireContentWriter(), handlers.Job.Delete)

		// Submission inbox.
		adminAPI.GET("/submissions", handlers.Submission.List)
		adminAPI.GET("/submissions/:id", handlers.Submission.Get)
		adminAPI.PUT("/submissions/:id", middleware.RequireContentWriter(), handlers.Submission.Update)
		adminAPI.DELETE("/submissions/:id", middleware.RequireContentWriter(), handlers.Submission.Delete)

		// Datasheet uploads.
		adminAPI.POST("/upload", middleware.RequireContentWriter(), handlers.File.Upload)
	}

	return router
}
