package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-guest-services/controllers"
	"hotel-guest-services/middleware"
	"hotel-guest-services/models"
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

// SetupRouter wires controllers onto the gin engine.
func SetupRouter(
	oc *controllers.OrderController,
	ic *controllers.InvoiceController,
	ac *controllers.AnalyticsController,
	gc *controllers.GuestController,
	sc *controllers.SettingsController,
	glh *controllers.GuestLoginHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

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
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/guest-login", glh.GuestLogin)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthRequired())

		orders := protected.Group("/orders")
		{
			orders.POST("", middleware.RoleRequired(models.RoleGuest), oc.CreateOrder)
			orders.GET("", oc.GetOrders)
			orders.GET("/:id", oc.GetOrder)
			orders.PATCH("/:id/status", middleware.StaffRequired(), oc.UpdateOrderStatus)
			orders.POST("/:id/cancel", middleware.RoleRequired(models.RoleGuest), oc.CancelOrder)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", ic.GetInvoices)
			invoices.GET("/:id", ic.GetInvoice)
			invoices.GET("/:id/pdf", ic.DownloadPDF)
			invoices.POST("/bulk", middleware.StaffRequired(), ic.GenerateBulk)
			invoices.POST("/reconcile", middleware.StaffRequired(), ic.Reconcile)
			invoices.PATCH("/:id/status", middleware.StaffRequired(), ic.UpdateInvoiceStatus)
			invoices.POST("/bulk-status", middleware.StaffRequired(), ic.BulkUpdateStatus)
		}

		analytics := protected.Group("/analytics")
		analytics.Use(middleware.StaffRequired())
		{
			analytics.GET("/revenue", ac.GetRevenueAnalytics)
		}

		guests := protected.Group("/guests")
		guests.Use(middleware.StaffRequired())
		{
			guests.GET("", gc.GetGuests)
			guests.GET("/:id", gc.GetGuest)
			guests.POST("/checkin", gc.CheckIn)
			guests.POST("/:id/checkout", gc.Checkout)
			guests.DELETE("/:id", middleware.RoleRequired(models.RoleAdmin), gc.DeleteGuest)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("/hotel", middleware.StaffRequired(), sc.GetHotelSettings)
			settings.PUT("/hotel", middleware.RoleRequired(models.RoleAdmin), sc.UpdateHotelSettings)
		}

		rooms := protected.Group("/rooms")
		rooms.Use(middleware.StaffRequired())
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", middleware.RoleRequired(models.RoleAdmin), controllers.DeleteRoom)
		}

		servicesGroup := protected.Group("/services")
		{
			servicesGroup.GET("", controllers.GetServices)
			servicesGroup.POST("", middleware.StaffRequired(), controllers.CreateService)
			servicesGroup.PATCH("/:id", middleware.StaffRequired(), controllers.UpdateService)
			servicesGroup.DELETE("/:id", middleware.StaffRequired(), controllers.DeleteService)
		}

		foodMenu := protected.Group("/food-menu")
		{
			foodMenu.GET("", controllers.GetFoodMenu)
			foodMenu.POST("", middleware.StaffRequired(), controllers.CreateFoodMenuItem)
			foodMenu.PATCH("/:id", middleware.StaffRequired(), controllers.UpdateFoodMenuItem)
			foodMenu.DELETE("/:id", middleware.StaffRequired(), controllers.DeleteFoodMenuItem)
		}

		staff := protected.Group("/staff")
		staff.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			staff.GET("", controllers.GetStaff)
			staff.POST("", controllers.CreateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
		}
	}

	return r
}
