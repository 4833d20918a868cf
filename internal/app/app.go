package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "assekura/docs"
	"assekura/internal/config"
	"assekura/internal/handlers"
	"assekura/internal/pdf"
	"assekura/internal/repositories"
	"assekura/internal/routes"
	"assekura/internal/services"
	"assekura/internal/utils"
)

func Run() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("failed to close database")
		}
	}()
	if err := db.Ping(); err != nil {
		logger.WithError(err).Fatal("database unreachable")
	}

	// === Redis (resend throttle) ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// === Repos ===
	verificationRepo := repositories.NewVerificationRepository(db)
	postRepo := repositories.NewPostRepository(db)
	leadRepo := repositories.NewLeadRepository(db)

	// === Services ===
	smsClient := utils.NewSMSClient(cfg.SMSGate.APIKey, cfg.SMSGate.SenderID, cfg.SMSGate.DryRun, logger)
	throttle := services.NewRedisThrottle(rdb, cfg.ResendWindow(), cfg.Verification.MaxSendsPerWindow)
	verificationService := services.NewVerificationService(verificationRepo, throttle, smsClient, logger, cfg.CodeTTL())

	blogService := services.NewBlogService(postRepo)

	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.OfficeEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
	webhookClient := utils.NewWebhookClient(cfg.Webhook.LeadURL, cfg.Webhook.AuthToken)
	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir, "assets/fonts/DejaVuSans.ttf")

	leadService := services.NewLeadService(
		leadRepo,
		verificationService,
		webhookClient,
		emailService,
		telegramService,
		pdfGen,
		logger,
	)

	// === Handlers ===
	verifyHandler := handlers.NewVerifyHandler(verificationService)
	blogHandler := handlers.NewBlogHandler(blogService)
	leadHandler := handlers.NewLeadHandler(leadService)
	authHandler := handlers.NewAuthHandler(&cfg.Auth)
	adminHandler := handlers.NewAdminHandler(blogService, leadService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		cfg,
		verifyHandler,
		blogHandler,
		leadHandler,
		authHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.WithField("addr", listenAddr).Info("server starting")
	if err := router.Run(listenAddr); err != nil {
		logger.WithError(err).Fatal("server stopped")
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
