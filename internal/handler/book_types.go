package handler

import (
	"github.com/google/uuid"

	"bookcatalog/internal/model"
)

type CreateBookRequest struct {
	Title       string      `json:"title" binding:"required"`
	Author      string      `json:"author" binding:"required"`
	Genre       string      `json:"genre"`
	Description string      `json:"description" binding:"omitempty,max=2000"`
	PublishedAt *model.Date `json:"published_at" swaggertype:"string" example:"1965-08-01"`
}

type UpdateBookRequest struct {
	Title       *string     `json:"title" binding:"omitempty,min=1"`
	Author      *string     `json:"author" binding:"omitempty,min=1"`
	Genre       *string     `json:"genre"`
	Description *string     `json:"description" binding:"omitempty,max=2000"`
	PublishedAt *model.Date `json:"published_at" swaggertype:"string" example:"1965-08-01"`
}

type Book struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Genre       string      `json:"genre,omitempty"`
	Description string      `json:"description,omitempty"`
	PublishedAt *model.Date `json:"published_at,omitempty" swaggertype:"string" example:"1965-08-01"`
	CreatedAt   model.Date  `json:"created_at" swaggertype:"string" example:"2025-11-24"`
	UpdatedAt   model.Date  `json:"updated_at" swaggertype:"string" example:"2025-11-24"`
}

type BookResponse struct {
	Data Book `json:"data"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ListBooksResponse struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}
