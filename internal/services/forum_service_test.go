package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/models"
)

// mockForumRepository is a mock implementation of ForumRepository
type mockForumRepository struct {
	threads         []*models.ForumThread
	thread          *models.ForumThread
	posts           []*models.ForumPost
	threadCount     int64
	postCount       int64
	err             error
	createPostCalls int
}

func (m *mockForumRepository) ListThreads(ctx context.Context, offset, limit int, categorySlug string) ([]*models.ForumThread, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.threads, nil
}

func (m *mockForumRepository) CountThreads(ctx context.Context, categorySlug string) (int64, error) {
	return m.threadCount, m.err
}

func (m *mockForumRepository) GetThreadByID(ctx context.Context, id int64) (*models.ForumThread, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.thread, nil
}

func (m *mockForumRepository) CreateThread(ctx context.Context, thread *models.ForumThread, openingPost string) error {
	if m.err != nil {
		return m.err
	}
	thread.ID = 1
	return nil
}

func (m *mockForumRepository) ListPostsByThread(ctx context.Context, threadID int64, offset, limit int) ([]*models.ForumPost, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.posts, nil
}

func (m *mockForumRepository) CountPostsByThread(ctx context.Context, threadID int64) (int64, error) {
	return m.postCount, nil
}

func (m *mockForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	m.createPostCalls++
	if m.err != nil {
		return m.err
	}
	post.ID = 10
	return nil
}

// mockCategoryRepository is a mock implementation of CategoryRepository
type mockCategoryRepository struct {
	categories []*models.Category
	category   *models.Category
	count      int64
	err        error
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *mockCategoryRepository) Count(ctx context.Context) (int64, error) {
	return m.count, m.err
}

func TestForumService_ListThreads(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}

	repo := &mockForumRepository{
		threads: []*models.ForumThread{
			{ID: 1, Title: "First", Author: author},
			{ID: 2, Title: "Second", Author: author},
		},
		threadCount: 12,
		postCount:   3,
	}
	svc := NewForumService(repo, &mockCategoryRepository{}, logger)

	page, err := svc.ListThreads(context.Background(), 0, 10, "")
	require.NoError(t, err)

	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(12), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(3), page.Content[0].PostCount)
	assert.Equal(t, "alice", page.Content[0].Author.Username)
}

func TestForumService_CreateThread(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}

	tests := []struct {
		name          string
		req           *models.CreateThreadRequest
		errorContains string
	}{
		{
			name: "success",
			req:  &models.CreateThreadRequest{Title: "New thread", Content: "Opening post"},
		},
		{
			name:          "empty title",
			req:           &models.CreateThreadRequest{Content: "Opening post"},
			errorContains: "title cannot be empty",
		},
		{
			name:          "empty content",
			req:           &models.CreateThreadRequest{Title: "New thread"},
			errorContains: "content cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockForumRepository{}
			svc := NewForumService(repo, &mockCategoryRepository{}, logger)

			resp, err := svc.CreateThread(context.Background(), tt.req, author)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, "New thread", resp.Title)
				assert.Equal(t, int64(1), resp.PostCount)
				assert.Equal(t, "alice", resp.Author.Username)
			}
		})
	}
}

func TestForumService_CreatePost(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}

	tests := []struct {
		name          string
		req           *models.CreatePostRequest
		repo          *mockForumRepository
		expectedError error
		errorContains string
		wantCreates   int
	}{
		{
			name:        "success",
			req:         &models.CreatePostRequest{Content: "A reply"},
			repo:        &mockForumRepository{thread: &models.ForumThread{ID: 5}},
			wantCreates: 1,
		},
		{
			name:          "empty content",
			req:           &models.CreatePostRequest{},
			repo:          &mockForumRepository{thread: &models.ForumThread{ID: 5}},
			errorContains: "content cannot be empty",
		},
		{
			name:          "unknown thread",
			req:           &models.CreatePostRequest{Content: "A reply"},
			repo:          &mockForumRepository{err: models.ErrNotFound},
			expectedError: models.ErrNotFound,
		},
		{
			name:          "locked thread",
			req:           &models.CreatePostRequest{Content: "A reply"},
			repo:          &mockForumRepository{thread: &models.ForumThread{ID: 5, IsLocked: true}},
			expectedError: models.ErrThreadLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewForumService(tt.repo, &mockCategoryRepository{}, logger)

			resp, err := svc.CreatePost(context.Background(), 5, tt.req, author)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, resp)
			} else if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, "A reply", resp.Content)
				assert.Equal(t, "alice", resp.Author.Username)
			}
			assert.Equal(t, tt.wantCreates, tt.repo.createPostCalls)
		})
	}
}

func TestForumService_GetThread(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}

	repo := &mockForumRepository{
		thread: &models.ForumThread{ID: 5, Title: "Discussion", Author: author, IsLocked: true},
		posts: []*models.ForumPost{
			{ID: 1, Content: "first", Author: author},
			{ID: 2, Content: "second", Author: author},
		},
	}
	svc := NewForumService(repo, &mockCategoryRepository{}, logger)

	detail, err := svc.GetThread(context.Background(), 5, 0, 20)
	require.NoError(t, err)

	assert.Equal(t, "Discussion", detail.Title)
	assert.True(t, detail.IsLocked)
	require.Len(t, detail.Posts, 2)
	assert.Equal(t, "first", detail.Posts[0].Content)
}
