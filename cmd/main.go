package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"explore-with-me/internal/auth"
	"explore-with-me/internal/config"
	"explore-with-me/internal/database"
	"explore-with-me/internal/handlers"
	"explore-with-me/internal/repository"
	"explore-with-me/internal/services"
	"explore-with-me/internal/stats"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repository and view-count collaborator
	repo := repository.NewRepository(db)
	statsClient := stats.NewHTTPClient(cfg.Stats.BaseURL)
	recorder := stats.NewRecorder(statsClient, cfg.App.Name)

	// Initialize services
	statsService := services.NewStatsService(repo, statsClient)
	eventService := services.NewEventService(repo, statsService)
	requestService := services.NewRequestService(repo)
	categoryService := services.NewCategoryService(db, repo)
	userService := services.NewUserService(db)
	commentService := services.NewCommentService(db, repo)
	compilationService := services.NewCompilationService(db, repo, statsService)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService, recorder)
	requestHandler := handlers.NewRequestHandler(requestService)
	adminHandler := handlers.NewAdminHandler(eventService, cfg.App.AdminKey)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	userHandler := handlers.NewUserHandler(userService)
	commentHandler := handlers.NewCommentHandler(commentService)
	compilationHandler := handlers.NewCompilationHandler(compilationService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Admin token endpoint (public, key-gated)
	router.POST("/auth/token", adminHandler.IssueToken)

	// Public routes
	router.GET("/events", eventHandler.GetPublicEvents)
	router.GET("/events/:id", eventHandler.GetPublicEvent)
	router.GET("/events/:id/comments", commentHandler.GetEventComments)
	router.GET("/categories", categoryHandler.GetCategories)
	router.GET("/categories/:catId", categoryHandler.GetCategory)
	router.GET("/compilations", compilationHandler.GetCompilations)
	router.GET("/compilations/:compId", compilationHandler.GetCompilation)

	// User routes
	users := router.Group("/users/:userId")
	{
		users.POST("/events", eventHandler.CreateEvent)
		users.GET("/events", eventHandler.GetUserEvents)
		users.GET("/events/:eventId", eventHandler.GetUserEvent)
		users.PATCH("/events/:eventId", eventHandler.UpdateUserEvent)
		users.GET("/events/:eventId/requests", requestHandler.GetEventRequests)
		users.PATCH("/events/:eventId/requests", requestHandler.UpdateEventRequests)

		users.POST("/requests", requestHandler.CreateRequest)
		users.GET("/requests", requestHandler.GetUserRequests)
		users.PATCH("/requests/:requestId/cancel", requestHandler.CancelRequest)

		users.POST("/comments/:eventId", commentHandler.AddComment)
		users.PATCH("/comments/:commentId", commentHandler.UpdateComment)
		users.DELETE("/comments/:commentId", commentHandler.DeleteComment)
	}

	// Admin routes (protected)
	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		admin.GET("/events", adminHandler.SearchEvents)
		admin.PATCH("/events/:eventId", adminHandler.UpdateEvent)

		admin.POST("/users", userHandler.CreateUser)
		admin.GET("/users", userHandler.GetUsers)
		admin.DELETE("/users/:userId", userHandler.DeleteUser)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PATCH("/categories/:catId", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:catId", categoryHandler.DeleteCategory)

		admin.POST("/compilations", compilationHandler.CreateCompilation)
		admin.PATCH("/compilations/:compId", compilationHandler.UpdateCompilation)
		admin.DELETE("/compilations/:compId", compilationHandler.DeleteCompilation)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
