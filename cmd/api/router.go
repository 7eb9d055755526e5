package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rentora-backend/internal/domains/user"
	"rentora-backend/internal/shared/middleware"
	"rentora-backend/internal/shared/response"
	"rentora-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.FrontendOrigin),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupPropertyRoutes(v1, c)
		setupBookingRoutes(v1, c)
		setupPaymentRoutes(v1, c)
		setupDashboardRoutes(v1, c)
		setupUploadRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.JWTManager)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.POST("/logout", authRequired, c.UserHandler.Logout)
		auth.GET("/verify-email", c.UserHandler.VerifyEmail)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
		auth.POST("/change-password", authRequired, c.UserHandler.ChangePassword)
		auth.GET("/profile", authRequired, c.UserHandler.GetProfile)
		auth.PUT("/profile", authRequired, c.UserHandler.UpdateProfile)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager), middleware.RequireRole(user.RoleAdmin))
	{
		users.GET("", c.UserHandler.ListUsers)
		users.GET("/:id", c.UserHandler.GetUser)
		users.PUT("/:id/role", c.UserHandler.UpdateUserRole)
		users.PUT("/:id/status", c.UserHandler.UpdateUserStatus)
	}
}

func setupPropertyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	properties := v1.Group("/properties")

	// Public listing routes still resolve the viewer when a token is
	// sent, so responses can mark which properties they liked.
	public := properties.Group("", middleware.OptionalAuth(c.JWTManager))
	{
		public.GET("", c.PropertyHandler.List)
		public.GET("/filters", c.PropertyHandler.FilterOptions)
		public.GET("/featured", c.PropertyHandler.ListFeatured)
		public.GET("/city/:city", c.PropertyHandler.ListByCity)
		public.GET("/:id", c.PropertyHandler.Get)
	}

	authed := properties.Group("", middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("", middleware.RequireRole(user.RoleLandlord, user.RoleAdmin), c.PropertyHandler.Create)
		authed.GET("/my", c.PropertyHandler.ListMine)
		authed.PUT("/:id", c.PropertyHandler.Update)
		authed.DELETE("/:id", c.PropertyHandler.Delete)
		authed.POST("/:id/like", c.PropertyHandler.ToggleLike)
	}
}

func setupBookingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	bookings := v1.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		bookings.POST("", c.BookingHandler.Create)
		bookings.GET("/my", c.BookingHandler.ListMine)
		bookings.GET("/:id", c.BookingHandler.Get)
		bookings.POST("/:id/pay", c.BookingHandler.Pay)
		bookings.POST("/:id/cancel", c.BookingHandler.Cancel)
	}
}

func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payments := v1.Group("/payments")
	{
		// The webhook authenticates via its signature, never a session.
		payments.POST("/webhook", c.PaymentHandler.Webhook)
		payments.GET("/config", c.PaymentHandler.Config)
	}
}

// Maintenance and the activity feed live under the dashboard surface;
// both are role-scoped inside their services.
func setupDashboardRoutes(v1 *gin.RouterGroup, c *container.Container) {
	dashboard := v1.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		dashboard.GET("/overview", c.DashboardHandler.Overview)
		dashboard.GET("/earnings", c.DashboardHandler.Earnings)
		dashboard.GET("/activities", c.ActivityHandler.List)

		dashboard.POST("/maintenance", c.MaintenanceHandler.Create)
		dashboard.GET("/maintenance", c.MaintenanceHandler.List)
		dashboard.GET("/maintenance/:id", c.MaintenanceHandler.Get)
		dashboard.PUT("/maintenance/:id", c.MaintenanceHandler.Update)
	}
}

func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	upload := v1.Group("/upload")
	upload.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		upload.POST("/image", c.UploadHandler.UploadImage)
		upload.POST("/images", c.UploadHandler.UploadImages)
		upload.DELETE("/:id", c.UploadHandler.DeleteImage)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":      "ok",
			"environment": c.Config.App.Environment,
			"version":     c.Config.App.Version,
			"timestamp":   time.Now().Format(time.RFC3339),
		}

		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		ctx.JSON(statusCode, health)
	}
}
