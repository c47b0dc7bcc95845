package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"dogbook/docs"
	"dogbook/internal/auth"
	"dogbook/internal/cache"
	"dogbook/internal/config"
	"dogbook/internal/db"
	apperrors "dogbook/internal/errors"
	"dogbook/internal/handler"
	"dogbook/internal/logger"
	"dogbook/internal/model"
	"dogbook/internal/repository"
	"dogbook/internal/router"
	"dogbook/internal/service"
)

// @title Dogbook API
// @version 1.0
// @description Dog post CRUD backend with JWT authentication and a configurable mutation guard.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		zlog.Info("RESET_DB=true detected, dropping all tables")
		for _, table := range []interface{}{&model.Post{}, &model.User{}, &model.Age{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				zlog.Warn("drop table failed (may not exist)", zap.Error(err))
			}
		}
	}

	if err := gormDB.AutoMigrate(&model.Age{}, &model.User{}, &model.Post{}); err != nil {
		zlog.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	ageRepo := repository.NewAgeRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	guard, err := service.NewMutationGuard(cfg.AuthMode, cfg.BcryptCost)
	if err != nil {
		zlog.Fatal("mutation guard init", zap.Error(err))
	}

	// Services
	ageService := service.NewAgeService(ageRepo, cacheClient)
	userService := service.NewUserService(userRepo, cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	postService := service.NewPostService(postRepo, ageRepo, guard)

	// Seed the age reference data on first boot.
	if err := ageService.Seed(context.Background()); err != nil {
		zlog.Fatal("seed ages", zap.Error(err))
	}

	// Handlers
	ageHandler := handler.NewAgeHandler(ageService)
	userHandler := handler.NewUserHandler(userService, authService)
	postHandler := handler.NewPostHandler(postService, cfg.AuthMode)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(zlog)

	router.Register(e, cfg, jwtService, userRepo, ageHandler, userHandler, postHandler)

	zlog.Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("authMode", cfg.AuthMode),
	)
	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server start", zap.Error(err))
	}
}
