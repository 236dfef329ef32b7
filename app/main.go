package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"procurement-system/internal/controllers"
	"procurement-system/internal/listeners"
	"procurement-system/internal/repositories"
	"procurement-system/internal/routes"
	"procurement-system/internal/services"
	"procurement-system/pkg/config"
	"procurement-system/pkg/customvalidator"
	"procurement-system/pkg/database/postgresql"
	"procurement-system/pkg/eventbus"
	"procurement-system/pkg/filestorage"
	"procurement-system/pkg/logger"
	appmw "procurement-system/pkg/middleware"
	"procurement-system/pkg/service"
	"procurement-system/pkg/utils"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()
	ctx := context.Background()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatal("could not connect to postgres", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("could not connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadDir)
	if err != nil {
		log.Fatal("could not initialize file storage", zap.Error(err))
	}

	validate := validator.New()
	if err := customvalidator.RegisterCustomValidations(validate); err != nil {
		log.Fatal("could not register custom validations", zap.Error(err))
	}

	// Repositories
	txManager := repositories.NewTxManager(dbPool)
	userRepo := repositories.NewUserRepository(dbPool, log)
	orderRepo := repositories.NewOrderRepository(dbPool, log)
	attachmentRepo := repositories.NewAttachmentRepository(dbPool)
	historyRepo := repositories.NewOrderHistoryRepository(dbPool, log)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Event bus and listeners
	bus := eventbus.New(log)
	listeners.NewNotificationListener(log).Register(bus)

	// Services
	jwtService := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, log)
	permissionService := services.NewPermissionService(userRepo, cacheRepo, log, cfg.Cache.ActorPermissionsTTL)
	authService := services.NewAuthService(userRepo, jwtService, log)
	notificationService := services.NewNotificationService(log)
	orderService := services.NewOrderService(
		txManager, orderRepo, attachmentRepo, historyRepo,
		permissionService, notificationService, fileStorage, bus, log,
	)
	reportService := services.NewReportService(orderRepo, log)

	// HTTP
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator(validate)
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Static("/uploads", cfg.Server.UploadDir)

	routes.InitRouter(e, routes.Dependencies{
		AuthController:   controllers.NewAuthController(authService, log),
		OrderController:  controllers.NewOrderController(orderService, log),
		StatusController: controllers.NewStatusController(orderService, log),
		ReportController: controllers.NewReportController(reportService, log),
		AuthMiddleware:   appmw.NewAuthMiddleware(jwtService, log),
	})

	log.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
