package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/findmymess/internal/container"
	"github.com/joshua-takyi/findmymess/internal/handlers"
	"github.com/joshua-takyi/findmymess/internal/metrics"
	"github.com/joshua-takyi/findmymess/internal/middleware"
	"github.com/joshua-takyi/findmymess/internal/web"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID", middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())

	adminKey := container.Config.AdminKey
	requireAdmin := middleware.AdminAuth(adminKey, container.Logger)
	uploadLogo := middleware.UploadLogo(container.BlobStore, container.Logger)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health(container.Store))

		messRoutes := api.Group("/messes")
		{
			messRoutes.GET("", middleware.DetectAdmin(adminKey), handlers.ListMesses(container.MessService, container.Logger))
			messRoutes.GET("/pending", requireAdmin, handlers.ListPendingMesses(container.MessService))
			messRoutes.GET("/:id", handlers.GetMess(container.MessService))
			messRoutes.POST("",
				container.RateLimiter.Handler(),
				middleware.DetectAdmin(adminKey),
				uploadLogo,
				handlers.CreateMess(container.MessService, container.Logger),
			)

			// the guard runs before the upload gate so rejected requests store nothing
			messRoutes.PATCH("/:id/status", requireAdmin, handlers.UpdateMessStatus(container.MessService))
			messRoutes.PUT("/:id", requireAdmin, uploadLogo, handlers.UpdateMess(container.MessService, container.Logger))
			messRoutes.DELETE("/:id", requireAdmin, handlers.DeleteMess(container.MessService))
		}

		reviewRoutes := api.Group("/reviews")
		{
			reviewRoutes.GET("/mess/:messId", handlers.ListReviewsByMess(container.ReviewService))
			reviewRoutes.POST("", handlers.CreateReview(container.ReviewService))
		}
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	web.Register(r, web.Deps{
		Messes:       container.MessService,
		Reviews:      container.ReviewService,
		Logger:       container.Logger,
		AdminKey:     adminKey,
		Upload:       uploadLogo,
		Limiter:      container.RateLimiter.Handler(),
		SecureCookie: container.Config.IsProduction(),
	})

	return r
}
