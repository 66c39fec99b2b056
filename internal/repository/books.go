package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookcatalog/internal/model"
)

type BookListParams struct {
	Page     int
	PageSize int
}

// BookSearchParams carries the field-match criteria. Empty fields are
// ignored; at least one must be set (enforced by the handler).
type BookSearchParams struct {
	Title    string
	Author   string
	Genre    string
	Page     int
	PageSize int
}

type BookListResult struct {
	Books []model.Book
	Total int64
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, params BookListParams) (BookListResult, error)
	Search(ctx context.Context, params BookSearchParams) (BookListResult, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		First(&book, "id = ?", id).Error; err != nil {

		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context, params BookListParams) (BookListResult, error) {
	return r.page(r.db.WithContext(ctx).Model(&model.Book{}), params.Page, params.PageSize)
}

// Search matches each provided criterion as a case-insensitive
// substring. Criteria combine with AND.
func (r *GormBookRepository) Search(ctx context.Context, params BookSearchParams) (BookListResult, error) {
	q := r.db.WithContext(ctx).Model(&model.Book{})

	if params.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", like(params.Title))
	}
	if params.Author != "" {
		q = q.Where("LOWER(author) LIKE ?", like(params.Author))
	}
	if params.Genre != "" {
		q = q.Where("LOWER(genre) LIKE ?", like(params.Genre))
	}

	return r.page(q, params.Page, params.PageSize)
}

func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":        book.Title,
			"author":       book.Author,
			"genre":        book.Genre,
			"description":  book.Description,
			"published_at": book.PublishedAt,
		}).Error
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBookRepository) page(q *gorm.DB, page, pageSize int) (BookListResult, error) {
	var result BookListResult

	if err := q.Count(&result.Total).Error; err != nil {
		return BookListResult{}, err
	}

	if err := q.
		Order("created_at, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&result.Books).Error; err != nil {

		return BookListResult{}, err
	}

	return result, nil
}

func like(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
