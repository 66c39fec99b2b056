package main

// @title           Book Catalog API
// @version         1.0
// @description     CRUD API for a catalog of books and their reviews.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bookcatalog/internal/config"
	"bookcatalog/internal/db"
	docs "bookcatalog/internal/docs"
	"bookcatalog/internal/handler"
	"bookcatalog/internal/model"
	"bookcatalog/internal/repository"
	"bookcatalog/pkg/logger"
)

const appVersion = "1.0.0"

func main() {
	startTime := time.Now()

	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	e := gin.Default()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	docs.SwaggerInfo.BasePath = "/api"

	database, err := db.ConnectWithRetry(cfg)
	if err != nil {
		logger.Sugar.Fatalf("could not connect to db: %v", err)
	}

	if err := database.AutoMigrate(&model.Book{}, &model.Review{}); err != nil {
		logger.Sugar.Fatalf("migration failed: %v", err)
	}

	healthHandler := handler.NewHealthHandler(database, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	bookRepo := repository.NewGormBookRepository(database)
	reviewRepo := repository.NewGormReviewRepository(database)

	api := e.Group("/api")
	{
		bookHandler := handler.NewBookHandler(bookRepo)
		bookHandler.RegisterRoutes(api)

		reviewHandler := handler.NewReviewHandler(reviewRepo, bookRepo)
		reviewHandler.RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Sugar.Infow("starting server", "addr", cfg.HTTPAddr, "version", appVersion)

	if err := e.Run(cfg.HTTPAddr); err != nil {
		logger.Sugar.Fatalf("server stopped: %v", err)
	}
}
