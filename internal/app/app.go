package app

import (
	"database/sql"
	"fmt"
	"log"

	"tasker/internal/config"
	"tasker/internal/handlers"
	"tasker/internal/middleware"
	"tasker/internal/pdf"
	"tasker/internal/repositories"
	"tasker/internal/routes"
	"tasker/internal/services"
	"tasker/internal/worker"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "tasker/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	tagRepo := repositories.NewTagRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	tgService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	// очередь уведомлений о новых задачах; сбои не влияют на создание
	var sink worker.Sink
	if tgService != nil {
		sink = tgService
	}
	notifier := worker.NewNotifier(cfg.Notify.Workers, cfg.Notify.QueueSize, sink)
	defer notifier.Close()

	userService := services.NewUserService(userRepo, emailService, authService)
	taskService := services.NewTaskService(taskRepo, notifier)
	tagService := services.NewTagService(tagRepo)

	reportGen := pdf.NewReportGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	tagHandler := handlers.NewTagHandler(tagService)
	reportHandler := handlers.NewReportHandler(taskService, reportGen)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		taskHandler,
		tagHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
