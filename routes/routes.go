package routes

import (
	"net/http"
	"time"

	"fixhive/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the HTTP handlers wired in main.
type HandlerBundle struct {
	Booking *handlers.BookingHandler
	Shops   *handlers.ShopHandler
}

// RegisterRoutes attaches all endpoints to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		shops := api.Group("/shops")
		{
			shops.GET("/:id", hb.Shops.GetShop)
			shops.GET("/:id/availability", hb.Booking.GetAvailableSlots)
			shops.GET("/:id/bookings", hb.Booking.ListShopBookings)
			shops.POST("/match", hb.Shops.MatchShops)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", hb.Booking.SubmitBooking)
			bookings.PATCH("/:id", hb.Booking.UpdateBooking)
			bookings.PATCH("/:id/status", hb.Booking.UpdateBookingStatus)
			bookings.POST("/:id/cancel", hb.Booking.CancelBooking)
		}
	}
}
