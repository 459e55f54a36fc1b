package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salonflow/handlers"
	"salonflow/middleware"
	"salonflow/utils"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	hold := r.Group("/api/hold")
	{
		hold.POST("/create", hb.CreateHoldHandler)
		hold.GET("/:holdID", hb.GetHoldHandler)
		hold.POST("/:holdID/cancel", hb.CancelHoldHandler)
	}

	otp := r.Group("/api/otp")
	{
		otp.POST("/send-otp", hb.SendOTPHandler)
		otp.POST("/verify-otp", hb.VerifyOTPHandler)
	}

	manage := r.Group("/api/manage")
	{
		manage.GET("/:token", hb.GetBookingHandler)
		manage.POST("/:token/cancel", hb.CancelBookingHandler)
	}

	// Staff-entered bookings bypass phone verification but share the
	// slot-conflict rule.
	staff := r.Group("/api/bookings")
	{
		staff.Use(middleware.StaffAuthMiddleware())
		staff.POST("", hb.CreateBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic service monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}
