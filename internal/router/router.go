package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/handler"
	"github.com/stemsi/portfolio-backend/internal/middleware"
	"github.com/stemsi/portfolio-backend/internal/response"
	"github.com/stemsi/portfolio-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Site       *handler.SiteHandler
	GPA        *handler.GPAHandler
	Preference *handler.PreferenceHandler
	Contact    *handler.ContactHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	visitorService *service.VisitorService,
	handlers *Handlers,
	contactLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:          middleware.DefaultBrotliConfig.Quality,
		MinLength:        middleware.DefaultBrotliConfig.MinLength,
		SkipPathPrefixes: []string{"/ws/"},
	}))

	router.GET("/health", handlers.Site.Health)

	// ─── 0. Public ─────────────────────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/site", handlers.Site.GetSiteInfo)
	}

	// ─── 1. GPA Calculator (stateless) ─────────────────────────────────
	gpaAPI := router.Group("/api/v1/gpa")
	{
		gpaAPI.GET("/scale", middleware.CacheControl(3600), handlers.GPA.GetScale)
		gpaAPI.POST("/calculate", handlers.GPA.Calculate)
		gpaAPI.POST("/import", handlers.GPA.Import)
	}

	// ─── 2. Visitor + Preferences ──────────────────────────────────────
	router.POST("/api/v1/visitor", handlers.Preference.IssueVisitor)

	prefAPI := router.Group("/api/v1/preferences")
	prefAPI.Use(middleware.RequireVisitor(visitorService), middleware.NoStore())
	{
		prefAPI.GET("/theme", handlers.Preference.GetTheme)
		prefAPI.PUT("/theme", handlers.Preference.SetTheme)
		prefAPI.POST("/theme/toggle", handlers.Preference.ToggleTheme)
	}

	// ─── 3. Contact (Rate Limited) ─────────────────────────────────────
	contactAPI := router.Group("/api/v1/contact")
	{
		contactAPI.POST("/validate", handlers.Contact.Validate)
		contactAPI.POST("", contactLimiter.Middleware(), handlers.Contact.Submit)
	}

	// ─── 4. WebSocket ──────────────────────────────────────────────────
	wsGroup := router.Group("/ws/v1")
	{
		wsGroup.GET("/gpa/calculator", handlers.WS.CalculatorStream)
	}

	return router
}
