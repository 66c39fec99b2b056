package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/model"
	"bookcatalog/internal/validation"
)

const (
	defaultPageSize = 15
	maxPageSize     = 500
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func parsePageParams(c *gin.Context) (page, pageSize int) {
	page = parseIntQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}

	pageSize = parseIntQuery(c, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func toBookResponse(b model.Book) BookResponse {
	return BookResponse{Data: toBook(b)}
}

func toBook(b model.Book) Book {
	var pub *model.Date
	if b.PublishedAt != nil && !b.PublishedAt.IsZero() {
		pub = &model.Date{Time: *b.PublishedAt}
	}

	return Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Description: b.Description,
		PublishedAt: pub,
		CreatedAt:   model.Date{Time: b.CreatedAt},
		UpdatedAt:   model.Date{Time: b.UpdatedAt},
	}
}

func toListBooksResponse(books []model.Book, page, pageSize int, total int64) ListBooksResponse {
	data := make([]Book, 0, len(books))
	for _, b := range books {
		data = append(data, toBook(b))
	}

	return ListBooksResponse{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
	}
}

func toReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{Data: toReview(r)}
}

func toReview(r model.Review) Review {
	var reviewed *model.Date
	if r.ReviewedAt != nil && !r.ReviewedAt.IsZero() {
		reviewed = &model.Date{Time: *r.ReviewedAt}
	}

	return Review{
		ID:         r.ID,
		BookID:     r.BookID,
		Reviewer:   r.Reviewer,
		Rating:     r.Rating,
		Comment:    r.Comment,
		ReviewedAt: reviewed,
		CreatedAt:  model.Date{Time: r.CreatedAt},
		UpdatedAt:  model.Date{Time: r.UpdatedAt},
	}
}

func toListReviewsResponse(reviews []model.Review, page, pageSize int, total int64) ListReviewsResponse {
	data := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		data = append(data, toReview(r))
	}

	return ListReviewsResponse{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
	}
}
