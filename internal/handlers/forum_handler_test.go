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

// mockForumService is a mock implementation of ForumService
type mockForumService struct {
	threads *models.PageResponse[*models.ForumThreadResponse]
	detail  *models.ForumThreadDetailResponse
	thread  *models.ForumThreadResponse
	post    *models.ForumPostResponse
	err     error
}

func (m *mockForumService) ListThreads(ctx context.Context, page, size int, categorySlug string) (*models.PageResponse[*models.ForumThreadResponse], error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.threads, nil
}

func (m *mockForumService) GetThread(ctx context.Context, id int64, page, size int) (*models.ForumThreadDetailResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

func (m *mockForumService) CreateThread(ctx context.Context, req *models.CreateThreadRequest, author *models.User) (*models.ForumThreadResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.thread, nil
}

func (m *mockForumService) CreatePost(ctx context.Context, threadID int64, req *models.CreatePostRequest, author *models.User) (*models.ForumPostResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.post, nil
}

// newForumTestRouter mounts the forum handler the way the server does
func newForumTestRouter(svc ForumService) chi.Router {
	logger, _ := zap.NewDevelopment()
	handler := NewForumHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return r
}

func TestForumHandler_ListThreads(t *testing.T) {
	svc := &mockForumService{
		threads: models.NewPageResponse([]*models.ForumThreadResponse{
			{ID: 1, Title: "First"},
		}, 0, 20, 1),
	}
	router := newForumTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/forum/threads", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var page models.PageResponse[*models.ForumThreadResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "First", page.Content[0].Title)
}

func TestForumHandler_GetThread(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		service        *mockForumService
		expectedStatus int
	}{
		{
			name:           "success",
			path:           "/api/forum/threads/5",
			service:        &mockForumService{detail: &models.ForumThreadDetailResponse{ID: 5, Title: "Discussion"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			path:           "/api/forum/threads/99",
			service:        &mockForumService{err: models.ErrNotFound},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			path:           "/api/forum/threads/abc",
			service:        &mockForumService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newForumTestRouter(tt.service)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestForumHandler_CreatePost(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}

	tests := []struct {
		name           string
		principal      *models.User
		body           string
		service        *mockForumService
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success",
			principal:      alice,
			body:           `{"content":"A reply"}`,
			service:        &mockForumService{post: &models.ForumPostResponse{ID: 10, Content: "A reply"}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unauthenticated",
			body:           `{"content":"A reply"}`,
			service:        &mockForumService{},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "authentication required",
		},
		{
			name:           "locked thread",
			principal:      alice,
			body:           `{"content":"A reply"}`,
			service:        &mockForumService{err: models.ErrThreadLocked},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Thread is locked",
		},
		{
			name:           "unknown thread",
			principal:      alice,
			body:           `{"content":"A reply"}`,
			service:        &mockForumService{err: models.ErrNotFound},
			expectedStatus: http.StatusNotFound,
			expectedError:  "thread not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newForumTestRouter(tt.service)

			req := httptest.NewRequest(http.MethodPost, "/api/forum/threads/5/posts", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.principal != nil {
				req = req.WithContext(auth.WithPrincipal(req.Context(), tt.principal))
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}
		})
	}
}

func TestForumHandler_CreateThread_RequiresPrincipal(t *testing.T) {
	router := newForumTestRouter(&mockForumService{})

	req := httptest.NewRequest(http.MethodPost, "/api/forum/threads",
		bytes.NewBufferString(`{"title":"t","content":"c"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
