package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookcatalog/internal/model"
	"bookcatalog/internal/repository"
	"bookcatalog/internal/validation"
)

type ReviewHandler struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
}

func NewReviewHandler(reviews repository.ReviewRepository, books repository.BookRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, books: books}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/books/:id/reviews")
	{
		reviews.POST("", h.CreateReview)
		reviews.GET("", h.ListReviews)
		reviews.GET("/:reviewID", h.GetReviewByID)
		reviews.PATCH("/:reviewID", h.UpdateReview)
		reviews.DELETE("/:reviewID", h.DeleteReview)
	}
}

// bookFromPath resolves the :id path segment and checks the book
// exists. Writes the error response itself and returns false on failure.
func (h *ReviewHandler) bookFromPath(c *gin.Context) (uuid.UUID, bool) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book id",
		)
		return uuid.Nil, false
	}

	if _, err := h.books.FindByID(c.Request.Context(), bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return uuid.Nil, false
		}

		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return uuid.Nil, false
	}

	return bookID, true
}

func reviewIDFromPath(c *gin.Context) (uuid.UUID, bool) {
	reviewID, err := uuid.Parse(c.Param("reviewID"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_REVIEW_ID",
			"invalid review id",
		)
		return uuid.Nil, false
	}
	return reviewID, true
}

// CreateReview godoc
// @Summary      Create a review
// @Description  Create a review for a book
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Book ID (UUID)"
// @Param        payload  body      CreateReviewRequest  true  "Review to create"
// @Success      201      {object}  ReviewResponse
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	bookID, ok := h.bookFromPath(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	var reviewedAt *time.Time
	if req.ReviewedAt != nil && !req.ReviewedAt.Time.IsZero() {
		t := req.ReviewedAt.Time
		reviewedAt = &t
	}

	review := model.Review{
		BookID:     bookID,
		Reviewer:   req.Reviewer,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewedAt: reviewedAt,
	}

	if err := h.reviews.Create(c.Request.Context(), &review); err != nil {
		writeError(c, http.StatusInternalServerError,
			"REVIEW_CREATE_FAILED",
			"failed to create review",
		)
		return
	}

	c.JSON(http.StatusCreated, toReviewResponse(review))
}

// ListReviews godoc
// @Summary      List reviews
// @Description  Get all reviews for a book, paginated in creation order
// @Tags         reviews
// @Produce      json
// @Param        id         path      string  true  "Book ID (UUID)"
// @Param        page       query     int     false  "Page number"     default(1)  minimum(1)
// @Param        page_size  query     int     false  "Items per page"  default(15) minimum(1) maximum(500)
// @Success      200  {object}  ListReviewsResponse
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	bookID, ok := h.bookFromPath(c)
	if !ok {
		return
	}

	page, pageSize := parsePageParams(c)

	result, err := h.reviews.ListByBook(c.Request.Context(), bookID, repository.ReviewListParams{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"REVIEW_LIST_FAILED",
			"failed to fetch reviews",
		)
		return
	}

	c.JSON(http.StatusOK, toListReviewsResponse(result.Reviews, page, pageSize, result.Total))
}

// GetReviewByID godoc
// @Summary      Get a review by ID
// @Description  Get a single review of a book
// @Tags         reviews
// @Produce      json
// @Param        id        path      string  true  "Book ID (UUID)"
// @Param        reviewID  path      string  true  "Review ID (UUID)"
// @Success      200  {object}  ReviewResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book or review not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/reviews/{reviewID} [get]
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	bookID, ok := h.bookFromPath(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFromPath(c)
	if !ok {
		return
	}

	review, err := h.reviews.FindByID(c.Request.Context(), bookID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"REVIEW_NOT_FOUND",
				"review not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"REVIEW_FETCH_FAILED",
			"failed to fetch review",
		)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Partially update a review of a book. Unspecified fields keep their prior values.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id        path      string               true  "Book ID (UUID)"
// @Param        reviewID  path      string               true  "Review ID (UUID)"
// @Param        payload   body      UpdateReviewRequest  true  "Fields to update"
// @Success      200       {object}  ReviewResponse
// @Failure      400       {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      404       {object}  validation.ErrorResponse   "Book or review not found"
// @Failure      500       {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/reviews/{reviewID} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	bookID, ok := h.bookFromPath(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFromPath(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	review, err := h.reviews.FindByID(ctx, bookID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"REVIEW_NOT_FOUND",
				"review not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"REVIEW_FETCH_FAILED",
			"failed to fetch review",
		)
		return
	}

	var req UpdateReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Reviewer == nil && req.Rating == nil &&
		req.Comment == nil && req.ReviewedAt == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Reviewer != nil {
		review.Reviewer = *req.Reviewer
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.ReviewedAt != nil {
		if req.ReviewedAt.Time.IsZero() {
			review.ReviewedAt = nil
		} else {
			t := req.ReviewedAt.Time
			review.ReviewedAt = &t
		}
	}

	if err := h.reviews.Update(ctx, review); err != nil {
		writeError(c, http.StatusInternalServerError,
			"REVIEW_UPDATE_FAILED",
			"failed to update review",
		)
		return
	}

	updated, err := h.reviews.FindByID(ctx, bookID, review.ID)
	if err != nil {
		writeError(c, http.StatusInternalServerError,
			"REVIEW_FETCH_FAILED",
			"failed to fetch updated review",
		)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(*updated))
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Delete a review of a book
// @Tags         reviews
// @Produce      json
// @Param        id        path      string  true  "Book ID (UUID)"
// @Param        reviewID  path      string  true  "Review ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book or review not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/reviews/{reviewID} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	bookID, ok := h.bookFromPath(c)
	if !ok {
		return
	}
	reviewID, ok := reviewIDFromPath(c)
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), bookID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"REVIEW_NOT_FOUND",
				"review not found",
			)
			return
		}

		writeError(c, http.StatusInternalServerError,
			"REVIEW_DELETE_FAILED",
			"failed to delete review",
		)
		return
	}

	c.Status(http.StatusNoContent)
}
