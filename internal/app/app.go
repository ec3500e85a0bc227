package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"privdm_backend/internal/access"
	"privdm_backend/internal/config"
	"privdm_backend/internal/handlers"
	"privdm_backend/internal/logger"
	"privdm_backend/internal/middleware"
	"privdm_backend/internal/registry"
	"privdm_backend/internal/routes"
	"privdm_backend/internal/services"
	"privdm_backend/internal/state"
	"privdm_backend/internal/storage"
	"privdm_backend/internal/validator"
	"privdm_backend/internal/workers"
	"privdm_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter, cleanup := SetupRouter(ctx, cfg)
	defer cleanup()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает все зависимости и возвращает готовый *gin.Engine
// вместе с функцией освобождения ресурсов.
func SetupRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, func()) {
	policy, err := access.ForName(cfg.Access.Policy)
	if err != nil {
		logger.Fatal("Failed to select access policy", "error", err)
	}
	logger.Info("Access policy selected", "policy", policy.Name())

	reg, err := registry.New(registry.Config{
		Type: cfg.Registry.Type,
		Path: cfg.Registry.Path,
		Name: cfg.Registry.Name,
	})
	if err != nil {
		logger.Fatal("Failed to initialize handle registry", "error", err)
	}
	logger.Info("Handle registry initialized", "type", cfg.Registry.Type)

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// Снапшот состояния, в памяти, с эталонными фикстурами
	store := state.NewSeededStore(cfg.Access.AdminHandle)

	// Менеджер создается до сервисов: он нужен им как Notifier
	wsManager := ws.NewWebSocketManager(cfg.Access.AdminHandle)

	serviceContainer := services.NewServiceContainer(cfg, store, policy, reg, storageInstance, wsManager)
	wsManager.Bind(serviceContainer)
	go wsManager.Run(ctx)

	wsHandler := ws.NewWebSocketHandler(wsManager)

	appHandlers := handlers.NewAppHandlers(validator.New(), serviceContainer)

	expiryWorker := workers.NewExpiryWorker(serviceContainer.ChatService)
	expiryWorker.Start(ctx)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	cleanup := func() {
		if err := reg.Close(); err != nil {
			logger.Warn("Failed to close handle registry", "error", err)
		}
	}
	return ginRouter, cleanup
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	return ginRouter
}
