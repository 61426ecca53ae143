package routes

import (
	"net/http"
	"time"

	"flavortable/handlers"
	"flavortable/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterBookingRoutes registers the conversational endpoint plus the admin
// CRUD surface.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("/chat", bh.Chat)
		api.POST("/stt", handlers.TranscribeAudio)
		api.GET("", bh.GetAllBookings)
		api.GET("/:id", bh.GetBookingByID)
		api.DELETE("/:id", bh.CancelBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, bh)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
