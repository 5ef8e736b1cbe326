package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"club-backend/controllers"
	"club-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the HTTP surface.
func SetupRouter(
	mc *controllers.MemberController,
	rc *controllers.ResourceController,
	bc *controllers.BookingController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		members := api.Group("/members")
		{
			members.GET("", mc.GetMembers)
			members.POST("", mc.CreateMember)

			// Lookup is by membership number, not the numeric PK.
			members.GET("/:membershipNo", mc.GetMember)
		}

		resources := api.Group("/resources")
		{
			resources.GET("", rc.GetResources)
			resources.POST("", rc.CreateResource)
			resources.GET("/:id", rc.GetResource)
			resources.PATCH("/:id", rc.UpdateResource)

			resources.GET("/:id/maintenance", rc.GetMaintenance)
			resources.POST("/:id/maintenance", rc.AddMaintenance)
			resources.GET("/:id/reservations", rc.GetReservations)
			resources.POST("/:id/reservations", rc.AddReservation)

			resources.POST("/:id/hold", rc.PlaceHold)
			resources.DELETE("/:id/hold", rc.ReleaseHold)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.GET("/:id/vouchers", bc.GetBookingVouchers)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/club", controllers.GetClubSettings)
			settings.PUT("/club", controllers.UpdateClubSettings)
		}
	}

	return r
}
