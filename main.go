package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-guest-services/config"
	"hotel-guest-services/controllers"
	"hotel-guest-services/routes"
	"hotel-guest-services/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("database connection established and migrations applied")

	// Initialize services
	settingsService := services.NewSettingsService(db)
	invoiceService := services.NewInvoiceService(db, settingsService)
	orderService := services.NewOrderService(db, invoiceService)
	analyticsService := services.NewAnalyticsService(db)
	guestService := services.NewGuestService(db)

	// Initialize controllers
	orderController := controllers.NewOrderController(orderService)
	invoiceController := controllers.NewInvoiceController(invoiceService, settingsService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)
	guestController := controllers.NewGuestController(guestService)
	settingsController := controllers.NewSettingsController(settingsService)
	guestLogin := &controllers.GuestLoginHandler{Guests: guestService}

	router := routes.SetupRouter(
		orderController,
		invoiceController,
		analyticsController,
		guestController,
		settingsController,
		guestLogin,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
