package main

import (
	"context"
	"log"
	"time"

	"aichat-server/config"
	"aichat-server/internal/handler"
	"aichat-server/internal/repository"
	"aichat-server/internal/server"
	"aichat-server/internal/services"
	"aichat-server/internal/storage"
	"aichat-server/pkg/database"
	"aichat-server/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	storageClient, err := storage.NewClient(ctx, storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
		PresignTTL: time.Duration(cfg.UploadTTLMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	chatRepo := repository.NewChatRepository(database.DB.Collection(database.ChatsCollection))
	userChatsRepo := repository.NewUserChatsRepository(database.DB.Collection(database.UserChatsCollection))

	chatService := services.NewChatService(chatRepo, userChatsRepo)
	uploadService := services.NewUploadService(storageClient)
	authService := services.NewAuthService(cfg.AuthSecret)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Chat:   handler.NewChatHandler(chatService, l),
		Upload: handler.NewUploadHandler(uploadService),
	}, authService)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
