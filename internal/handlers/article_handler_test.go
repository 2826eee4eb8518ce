package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/auth"
	"github.com/devhub/backend/internal/models"
)

// mockArticleService is a mock implementation of ArticleService
type mockArticleService struct {
	page    *models.PageResponse[*models.ArticleListResponse]
	article *models.ArticleResponse
	popular []*models.ArticleListResponse
	err     error
}

func (m *mockArticleService) List(ctx context.Context, page, size int, categorySlug string) (*models.PageResponse[*models.ArticleListResponse], error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func (m *mockArticleService) GetBySlug(ctx context.Context, slug string) (*models.ArticleResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.article, nil
}

func (m *mockArticleService) Search(ctx context.Context, q string, page, size int) (*models.PageResponse[*models.ArticleListResponse], error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func (m *mockArticleService) GetPopular(ctx context.Context, size int) ([]*models.ArticleListResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.popular, nil
}

func (m *mockArticleService) Create(ctx context.Context, req *models.CreateArticleRequest, author *models.User) (*models.ArticleResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.article, nil
}

// newArticleTestRouter mounts the article handler the way the server does
func newArticleTestRouter(svc ArticleService) chi.Router {
	logger, _ := zap.NewDevelopment()
	handler := NewArticleHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return r
}

func TestArticleHandler_GetBySlug(t *testing.T) {
	tests := []struct {
		name           string
		service        *mockArticleService
		expectedStatus int
	}{
		{
			name:           "success",
			service:        &mockArticleService{article: &models.ArticleResponse{ID: 1, Slug: "first"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			service:        &mockArticleService{err: models.ErrNotFound},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newArticleTestRouter(tt.service)

			req := httptest.NewRequest(http.MethodGet, "/api/articles/first", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestArticleHandler_Search(t *testing.T) {
	svc := &mockArticleService{
		page: models.NewPageResponse([]*models.ArticleListResponse{{ID: 1, Title: "Generics"}}, 0, 10, 1),
	}
	router := newArticleTestRouter(svc)

	t.Run("missing query parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/articles/search", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("with query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/articles/search?q=generics", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var page models.PageResponse[*models.ArticleListResponse]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Content, 1)
		assert.Equal(t, "Generics", page.Content[0].Title)
	})
}

func TestArticleHandler_Create(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", Role: models.RoleAuthor}

	t.Run("unauthenticated", func(t *testing.T) {
		router := newArticleTestRouter(&mockArticleService{})

		req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(`{"title":"t","content":"c"}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		router := newArticleTestRouter(&mockArticleService{
			article: &models.ArticleResponse{ID: 1, Title: "t", Slug: "t"},
		})

		req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(`{"title":"t","content":"c"}`))
		req = req.WithContext(auth.WithPrincipal(req.Context(), alice))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}
