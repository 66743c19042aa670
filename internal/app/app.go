package app

import (
	"database/sql"
	"fmt"
	"log"

	"taskhub/internal/config"
	"taskhub/internal/handlers"
	"taskhub/internal/repositories"
	"taskhub/internal/routes"
	"taskhub/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskhub/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret)

	var emailService services.EmailService
	if cfg.Email.SMTPHost != "" {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	userService := services.NewUserService(userRepo, taskRepo, authService, emailService, cfg.Auth.AdminInviteToken)
	taskService := services.NewTaskService(taskRepo, userRepo)
	dashboardService := services.NewDashboardService(taskRepo, userRepo)
	reportService := services.NewReportService(taskRepo, userRepo)

	// Telegram pings, nil when no bot token configured
	notifyService := services.NewNotifyService(cfg.Telegram.BotToken)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, cfg.Files.UploadsDir)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, dashboardService, notifyService, userRepo)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		cfg.Auth.JWTSecret,
		cfg.Files.UploadsDir,
		authHandler,
		userHandler,
		taskHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
