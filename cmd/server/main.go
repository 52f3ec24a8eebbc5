package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interview-prep-server/internal/config"
	"interview-prep-server/internal/db"
	"interview-prep-server/internal/document"
	"interview-prep-server/internal/interview"
	"interview-prep-server/internal/meeting"
	"interview-prep-server/internal/middleware"
	"interview-prep-server/internal/relay"
	"interview-prep-server/internal/user"
	"interview-prep-server/internal/worker"
	"interview-prep-server/internal/ws"
	"interview-prep-server/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Migrate database schema
	db.Migrate()

	// Seed database with initial data (for development)
	db.SeedData()

	// Initialize Redis
	redis.InitRedis()

	// Initialize repository
	userRepo := user.NewRepository(db.AppDb)
	interviewRepo := interview.NewRepository(db.AppDb)
	docStore := document.NewStore(db.AppDb)
	// Initialize service
	userService := user.NewService(userRepo)
	meetingClient := meeting.NewClient(config.AppConfig.MeetingAPIAddress, config.AppConfig.MeetingAPIKey)
	interviewService := interview.NewService(interviewRepo, meetingClient)
	// Initialize handler
	userHandler := user.NewHandler(userService)
	interviewHandler := interview.NewHandler(interviewService)

	// Realtime relay
	pool := worker.NewWorkerPool(4)
	registry := relay.NewRegistry()
	engine := relay.NewEngine(registry, docStore, pool)
	gateway := ws.NewGateway(engine)

	// Initialize Gin router
	router := gin.Default()

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// User routes
	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)
	router.DELETE("/logout", middleware.AuthMiddleWare(), userHandler.Logout)
	router.GET("/profile", middleware.AuthMiddleWare(), userHandler.GetProfile)
	router.PUT("/profile", middleware.AuthMiddleWare(), userHandler.UpdateProfile)
	router.DELETE("/profile", middleware.AuthMiddleWare(), userHandler.DeleteProfile)

	// Interview routes
	router.POST("/interviews", middleware.AuthMiddleWare(), interviewHandler.Schedule)
	router.GET("/interviews", middleware.AuthMiddleWare(), interviewHandler.List)
	router.GET("/interviews/:id", middleware.AuthMiddleWare(), interviewHandler.Show)
	router.DELETE("/interviews/:id", middleware.AuthMiddleWare(), interviewHandler.Cancel)

	// Realtime collaboration endpoint. Not behind the JWT middleware: a
	// token passed in the query is verified, but none is required.
	router.GET("/ws", gateway.Handle)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/stats", func(c *gin.Context) {
		rooms, clients := registry.Stats()
		c.JSON(http.StatusOK, gin.H{"rooms": rooms, "clients": clients})
	})

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	// drain pending persistence tasks before exit
	pool.Shutdown()

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
