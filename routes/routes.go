package routes

import (
	"net/http"
	"time"

	"glambook/handlers"
	"glambook/middleware"
	"glambook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAgentRoutes registers the conversational booking endpoints.
func RegisterAgentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/agent")
	{
		api.Use(middleware.RateLimitMiddleware())
		api.POST("/chat", hb.ChatHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/resend-otp", hb.ResendOTPHandler)
		api.GET("/session/:id", hb.GetSessionHandler)
		api.DELETE("/session/:id", hb.EndSessionHandler)
	}
}

// RegisterCatalogRoutes registers the public service catalog endpoint.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/services", hb.ServicesHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.AdminLoginHandler)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/bookings", hb.ListBookingsHandler)
		adminGroup.GET("/bookings/:id", hb.GetBookingHandler)
		adminGroup.PATCH("/bookings/:id/status", hb.UpdateBookingStatusHandler)
		adminGroup.GET("/knowledge", hb.ListKnowledgeHandler)
		adminGroup.POST("/knowledge", hb.CreateKnowledgeHandler)
		adminGroup.PUT("/knowledge/:id", hb.UpdateKnowledgeHandler)
		adminGroup.DELETE("/knowledge/:id", hb.DeleteKnowledgeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAgentRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterAdminRoutes(r, hb)
}
