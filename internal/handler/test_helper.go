package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bookcatalog/internal/model"
	"bookcatalog/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Book{}, &model.Review{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func setupTestRouterWithRepos(
	bookRepo repository.BookRepository,
	reviewRepo repository.ReviewRepository,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	bh := NewBookHandler(bookRepo)
	bh.RegisterRoutes(r.Group(""))

	rh := NewReviewHandler(reviewRepo, bookRepo)
	rh.RegisterRoutes(r.Group(""))

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	bookRepo := repository.NewGormBookRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	return setupTestRouterWithRepos(bookRepo, reviewRepo)
}
