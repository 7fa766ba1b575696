package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/config"
	"storefront/internal/auth"
	"storefront/internal/delivery"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	"storefront/pkg/db"
	"storefront/pkg/mailer"
	"storefront/pkg/uploader"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting Storefront Service...")

	// --- Database ---
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		logger.Fatalf("Failed to ensure database schema: %v", err)
	}
	logger.Info("Database connection established.")

	// --- External collaborators ---
	imageUploader, err := uploader.NewCloudinaryUploader(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret,
		cfg.CloudinaryFolder, logger,
	)
	if err != nil {
		logger.Fatalf("Failed to configure image uploader: %v", err)
	}

	contactMailer := mailer.NewSMTPMailer(
		cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass,
		cfg.EmailUser, cfg.EmailTo, logger,
	)

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	// --- Repository layer ---
	productRepo := repository.NewPostgresProductRepository(database, logger)
	subscriberRepo := repository.NewPostgresSubscriberRepository(database, logger)
	contactRepo := repository.NewPostgresContactRepository(database, logger)
	userRepo := repository.NewPostgresUserRepository(database, logger)
	logger.Info("Repositories initialized.")

	// --- Usecase layer ---
	productUseCase := usecase.NewProductUseCase(productRepo, imageUploader, logger)
	subscriberUseCase := usecase.NewSubscriberUseCase(subscriberRepo, logger)
	contactUseCase := usecase.NewContactUseCase(contactRepo, contactMailer, cfg.EmailTo, logger)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokens, logger)
	logger.Info("Use cases initialized.")

	if err := authUseCase.EnsureAdminUser(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatalf("Failed to seed admin user: %v", err)
	}

	// --- Delivery layer ---
	productHandler := delivery.NewProductHandler(productUseCase, logger)
	contactHandler := delivery.NewContactHandler(contactUseCase, subscriberUseCase, logger)
	authHandler := delivery.NewAuthHandler(authUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(delivery.RequestLogger(logger))

	authRequired := delivery.AuthMiddleware(tokens, logger)
	productHandler.RegisterRoutes(router, authRequired)
	contactHandler.RegisterRoutes(router, authRequired)
	authHandler.RegisterRoutes(router)
	logger.Info("API routes registered.")

	logger.Infof("Starting server on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
