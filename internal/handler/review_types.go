package handler

import (
	"github.com/google/uuid"

	"bookcatalog/internal/model"
)

type CreateReviewRequest struct {
	Reviewer   string      `json:"reviewer" binding:"required"`
	Rating     int         `json:"rating" binding:"required,min=1,max=10"`
	Comment    string      `json:"comment" binding:"omitempty,max=2000"`
	ReviewedAt *model.Date `json:"reviewed_at" swaggertype:"string" example:"2025-11-24"`
}

type UpdateReviewRequest struct {
	Reviewer   *string     `json:"reviewer" binding:"omitempty,min=1"`
	Rating     *int        `json:"rating" binding:"omitempty,min=1,max=10"`
	Comment    *string     `json:"comment" binding:"omitempty,max=2000"`
	ReviewedAt *model.Date `json:"reviewed_at" swaggertype:"string" example:"2025-11-24"`
}

type Review struct {
	ID         uuid.UUID   `json:"id"`
	BookID     uuid.UUID   `json:"book_id"`
	Reviewer   string      `json:"reviewer"`
	Rating     int         `json:"rating"`
	Comment    string      `json:"comment,omitempty"`
	ReviewedAt *model.Date `json:"reviewed_at,omitempty" swaggertype:"string" example:"2025-11-24"`
	CreatedAt  model.Date  `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt  model.Date  `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type ReviewResponse struct {
	Data Review `json:"data"`
}

type ListReviewsResponse struct {
	Data       []Review   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
