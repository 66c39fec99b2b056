package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookcatalog/internal/model"
)

type ReviewListParams struct {
	Page     int
	PageSize int
}

type ReviewListResult struct {
	Reviews []model.Review
	Total   int64
}

// ReviewRepository scopes every lookup by both book and review id, so a
// review can never be reached through the wrong book.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, bookID, id uuid.UUID) (*model.Review, error)
	ListByBook(ctx context.Context, bookID uuid.UUID, params ReviewListParams) (ReviewListResult, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, bookID, id uuid.UUID) error
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) FindByID(ctx context.Context, bookID, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		First(&review, "id = ? AND book_id = ?", id, bookID).Error; err != nil {

		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID, params ReviewListParams) (ReviewListResult, error) {
	var result ReviewListResult

	q := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("book_id = ?", bookID)

	if err := q.Count(&result.Total).Error; err != nil {
		return ReviewListResult{}, err
	}

	if err := q.
		Order("created_at, id").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&result.Reviews).Error; err != nil {

		return ReviewListResult{}, err
	}

	return result, nil
}

func (r *GormReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ? AND book_id = ?", review.ID, review.BookID).
		Updates(map[string]any{
			"reviewer":    review.Reviewer,
			"rating":      review.Rating,
			"comment":     review.Comment,
			"reviewed_at": review.ReviewedAt,
		}).Error
}

func (r *GormReviewRepository) Delete(ctx context.Context, bookID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&model.Review{}, "id = ? AND book_id = ?", id, bookID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
