package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookcatalog/internal/model"
	"bookcatalog/internal/repository"
	"bookcatalog/internal/validation"
)

type fakeBookRepo struct {
	CreateFn   func(ctx context.Context, b *model.Book) error
	FindByIDFn func(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListFn     func(ctx context.Context, params repository.BookListParams) (repository.BookListResult, error)
	SearchFn   func(ctx context.Context, params repository.BookSearchParams) (repository.BookListResult, error)
	UpdateFn   func(ctx context.Context, b *model.Book) error
	DeleteFn   func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) List(ctx context.Context, params repository.BookListParams) (repository.BookListResult, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, params)
	}
	return repository.BookListResult{}, nil
}

func (f *fakeBookRepo) Search(ctx context.Context, params repository.BookSearchParams) (repository.BookListResult, error) {
	if f.SearchFn != nil {
		return f.SearchFn(ctx, params)
	}
	return repository.BookListResult{}, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func performJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return v
}

func TestCreateBook_ReturnsStoredRecordWithID(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	w := performJSON(t, r, http.MethodPost, "/books", map[string]any{
		"title":  "Dune",
		"author": "Frank Herbert",
		"genre":  "Sci-Fi",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body %s", w.Code, w.Body.String())
	}

	resp := decodeBody[BookResponse](t, w)
	if resp.Data.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}
	if resp.Data.Title != "Dune" || resp.Data.Author != "Frank Herbert" || resp.Data.Genre != "Sci-Fi" {
		t.Fatalf("unexpected created book: %+v", resp.Data)
	}

	// Get by the returned id must see the same fields.
	w = performJSON(t, r, http.MethodGet, "/books/"+resp.Data.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	got := decodeBody[BookResponse](t, w)
	if got.Data != resp.Data {
		t.Fatalf("created and fetched books differ: %+v vs %+v", resp.Data, got.Data)
	}
}

func TestCreateBook_EmptyTitleRejectedWithoutWrite(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	w := performJSON(t, r, http.MethodPost, "/books", map[string]any{
		"title":  "",
		"author": "Frank Herbert",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&model.Book{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no stored books after rejected create, got %d", count)
	}
}

func TestCreateBook_MissingAuthorRejected(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{
		CreateFn: func(ctx context.Context, b *model.Book) error {
			t.Fatal("repository must not be called for invalid input")
			return nil
		},
	}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodPost, "/books", map[string]any{
		"title": "Dune",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	resp := decodeBody[validation.ErrorResponse](t, w)
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "author" {
		t.Fatalf("unexpected validation errors: %+v", resp.Errors)
	}
}

func TestGetBookByID_NotFound(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodGet, "/books/"+uuid.NewString(), nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	resp := decodeBody[validation.ErrorResponse](t, w)
	if resp.Code != "BOOK_NOT_FOUND" {
		t.Fatalf("expected BOOK_NOT_FOUND, got %q", resp.Code)
	}
}

func TestGetBookByID_InvalidUUID(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodGet, "/books/not-a-uuid", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetBookByID_StoreFailure(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{
		FindByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) {
			return nil, errors.New("connection refused")
		},
	}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodGet, "/books/"+uuid.NewString(), nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestUpdateBook_PartialUpdateKeepsOtherFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	created := decodeBody[BookResponse](t, performJSON(t, r, http.MethodPost, "/books", map[string]any{
		"title":       "Dune",
		"author":      "Frank Herbert",
		"genre":       "Sci-Fi",
		"description": "Desert planet.",
	}))

	w := performJSON(t, r, http.MethodPatch, "/books/"+created.Data.ID.String(), map[string]any{
		"genre": "Science Fiction",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}

	updated := decodeBody[BookResponse](t, w)
	if updated.Data.Genre != "Science Fiction" {
		t.Fatalf("expected updated genre, got %q", updated.Data.Genre)
	}
	if updated.Data.Title != "Dune" || updated.Data.Author != "Frank Herbert" || updated.Data.Description != "Desert planet." {
		t.Fatalf("unspecified fields changed: %+v", updated.Data)
	}
}

func TestUpdateBook_EmptyTitleRejected(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	created := decodeBody[BookResponse](t, performJSON(t, r, http.MethodPost, "/books", map[string]any{
		"title":  "Dune",
		"author": "Frank Herbert",
	}))

	w := performJSON(t, r, http.MethodPatch, "/books/"+created.Data.ID.String(), map[string]any{
		"title": "",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", w.Code, w.Body.String())
	}
}

func TestUpdateBook_NoFieldsRejected(t *testing.T) {
	bookID := uuid.New()
	r := setupTestRouterWithRepos(&fakeBookRepo{
		FindByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Book, error) {
			return &model.Book{ID: bookID, Title: "Dune", Author: "Frank Herbert"}, nil
		},
	}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodPatch, "/books/"+bookID.String(), map[string]any{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	resp := decodeBody[validation.ErrorResponse](t, w)
	if resp.Code != "NO_FIELDS_TO_UPDATE" {
		t.Fatalf("expected NO_FIELDS_TO_UPDATE, got %q", resp.Code)
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodPatch, "/books/"+uuid.NewString(), map[string]any{
		"title": "New Title",
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteBook_ThenGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	created := decodeBody[BookResponse](t, performJSON(t, r, http.MethodPost, "/books", map[string]any{
		"title":  "Dune",
		"author": "Frank Herbert",
	}))

	w := performJSON(t, r, http.MethodDelete, "/books/"+created.Data.ID.String(), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = performJSON(t, r, http.MethodGet, "/books/"+created.Data.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestDeleteBook_NotFound(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{
		DeleteFn: func(ctx context.Context, id uuid.UUID) error {
			return gorm.ErrRecordNotFound
		},
	}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodDelete, "/books/"+uuid.NewString(), nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListBooks_PaginationEnvelope(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	for _, title := range []string{"Dune", "Dune Messiah", "Children of Dune"} {
		w := performJSON(t, r, http.MethodPost, "/books", map[string]any{
			"title":  title,
			"author": "Frank Herbert",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d", w.Code)
		}
	}

	w := performJSON(t, r, http.MethodGet, "/books?page=2&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeBody[ListBooksResponse](t, w)
	if resp.Pagination.Total != 3 || resp.Pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 book on page 2, got %d", len(resp.Data))
	}
}

func TestListBooks_CardinalityAfterCreatesAndDeletes(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	ids := make([]string, 0, 4)
	for _, title := range []string{"A", "B", "C", "D"} {
		w := performJSON(t, r, http.MethodPost, "/books", map[string]any{
			"title":  title,
			"author": "Someone",
		})
		created := decodeBody[BookResponse](t, w)
		ids = append(ids, created.Data.ID.String())
	}

	for _, id := range ids[:2] {
		w := performJSON(t, r, http.MethodDelete, "/books/"+id, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete failed: %d", w.Code)
		}
	}

	w := performJSON(t, r, http.MethodGet, "/books", nil)
	resp := decodeBody[ListBooksResponse](t, w)

	if resp.Pagination.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("expected 2 books after 4 creates and 2 deletes, got total=%d len=%d",
			resp.Pagination.Total, len(resp.Data))
	}
}

func TestSearchBooks_RequiresCriterion(t *testing.T) {
	r := setupTestRouterWithRepos(&fakeBookRepo{}, &fakeReviewRepo{})

	w := performJSON(t, r, http.MethodGet, "/books/search", nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	resp := decodeBody[validation.ErrorResponse](t, w)
	if resp.Code != "MISSING_SEARCH_CRITERIA" {
		t.Fatalf("expected MISSING_SEARCH_CRITERIA, got %q", resp.Code)
	}
}

func TestSearchBooks_ByAuthorReturnsMatchingSet(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(db)

	seed := []map[string]any{
		{"title": "Dune", "author": "Frank Herbert", "genre": "Sci-Fi"},
		{"title": "Dune Messiah", "author": "Frank Herbert", "genre": "Sci-Fi"},
		{"title": "The Hobbit", "author": "J.R.R. Tolkien", "genre": "Fantasy"},
	}
	for _, b := range seed {
		if w := performJSON(t, r, http.MethodPost, "/books", b); w.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d", w.Code)
		}
	}

	w := performJSON(t, r, http.MethodGet, "/books/search?author=Frank+Herbert", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}

	resp := decodeBody[ListBooksResponse](t, w)
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Data))
	}
	for _, b := range resp.Data {
		if b.Author != "Frank Herbert" {
			t.Fatalf("unexpected author in results: %q", b.Author)
		}
	}

	w = performJSON(t, r, http.MethodGet, "/books/search?genre=fantasy&title=hobbit", nil)
	resp = decodeBody[ListBooksResponse](t, w)
	if len(resp.Data) != 1 || resp.Data[0].Title != "The Hobbit" {
		t.Fatalf("unexpected combined search result: %+v", resp.Data)
	}

	w = performJSON(t, r, http.MethodGet, "/books/search?author=Asimov", nil)
	resp = decodeBody[ListBooksResponse](t, w)
	if len(resp.Data) != 0 {
		t.Fatalf("expected empty result set, got %+v", resp.Data)
	}
}
