package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/models"
)

// mockArticleRepository is a mock implementation of ArticleRepository
type mockArticleRepository struct {
	articles    []*models.Article
	article     *models.Article
	count       int64
	err         error
	created     *models.Article
	createdTags []int64
}

func (m *mockArticleRepository) ListPublished(ctx context.Context, offset, limit int, categorySlug string) ([]*models.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

func (m *mockArticleRepository) CountPublished(ctx context.Context, categorySlug string) (int64, error) {
	return m.count, m.err
}

func (m *mockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.article, nil
}

func (m *mockArticleRepository) Search(ctx context.Context, q string, offset, limit int) ([]*models.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

func (m *mockArticleRepository) CountSearch(ctx context.Context, q string) (int64, error) {
	return m.count, m.err
}

func (m *mockArticleRepository) ListPopular(ctx context.Context, limit int) ([]*models.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

func (m *mockArticleRepository) Create(ctx context.Context, article *models.Article, tagIDs []int64) error {
	if m.err != nil {
		return m.err
	}
	article.ID = 1
	m.created = article
	m.createdTags = tagIDs
	return nil
}

// mockTagRepository is a mock implementation of TagRepository
type mockTagRepository struct {
	tags []models.Tag
	err  error
}

func (m *mockTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags, nil
}

func (m *mockTagRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags, nil
}

func (m *mockTagRepository) ListByArticleID(ctx context.Context, articleID int64) ([]models.Tag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags, nil
}

func TestArticleService_List(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 1, Username: "alice", Role: models.RoleAuthor}

	repo := &mockArticleRepository{
		articles: []*models.Article{
			{ID: 1, Title: "First", Slug: "first", Author: author},
			{ID: 2, Title: "Second", Slug: "second", Author: author},
		},
		count: 25,
	}
	tags := &mockTagRepository{tags: []models.Tag{{ID: 1, Name: "go", Slug: "go"}}}
	svc := NewArticleService(repo, &mockCategoryRepository{}, tags, logger)

	page, err := svc.List(context.Background(), 0, 10, "")
	require.NoError(t, err)

	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(25), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Content[0].Tags, 1)
	assert.Equal(t, "go", page.Content[0].Tags[0].Name)
}

func TestArticleService_GetBySlug(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 1, Username: "alice", Role: models.RoleAuthor}

	t.Run("found", func(t *testing.T) {
		repo := &mockArticleRepository{
			article: &models.Article{ID: 1, Title: "First", Slug: "first", Author: author},
		}
		svc := NewArticleService(repo, &mockCategoryRepository{}, &mockTagRepository{}, logger)

		resp, err := svc.GetBySlug(context.Background(), "first")
		require.NoError(t, err)
		assert.Equal(t, "first", resp.Slug)
		assert.Equal(t, "alice", resp.Author.Username)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockArticleRepository{err: models.ErrNotFound}
		svc := NewArticleService(repo, &mockCategoryRepository{}, &mockTagRepository{}, logger)

		resp, err := svc.GetBySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, resp)
	})
}

func TestArticleService_Create(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 7, Username: "alice", Role: models.RoleAuthor}

	tests := []struct {
		name          string
		req           *models.CreateArticleRequest
		errorContains string
	}{
		{
			name: "success",
			req: &models.CreateArticleRequest{
				Title:   "Generics in Practice",
				Summary: "A tour",
				Content: "Body",
				TagIDs:  []int64{1, 2},
			},
		},
		{
			name:          "empty title",
			req:           &models.CreateArticleRequest{Content: "Body"},
			errorContains: "title cannot be empty",
		},
		{
			name:          "empty content",
			req:           &models.CreateArticleRequest{Title: "Generics in Practice"},
			errorContains: "content cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockArticleRepository{}
			tags := &mockTagRepository{tags: []models.Tag{{ID: 1, Slug: "go"}, {ID: 2, Slug: "generics"}}}
			svc := NewArticleService(repo, &mockCategoryRepository{}, tags, logger)

			resp, err := svc.Create(context.Background(), tt.req, author)

			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "generics-in-practice", resp.Slug)
			assert.Equal(t, models.ArticleStatusPublished, repo.created.Status)
			assert.Equal(t, author.ID, repo.created.AuthorID)
			assert.Equal(t, []int64{1, 2}, repo.createdTags)
		})
	}
}

func TestArticleService_Create_IgnoresUnknownCategory(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	author := &models.User{ID: 7, Username: "alice", Role: models.RoleAuthor}
	categoryID := int64(99)

	repo := &mockArticleRepository{}
	categories := &mockCategoryRepository{err: models.ErrNotFound}
	svc := NewArticleService(repo, categories, &mockTagRepository{}, logger)

	resp, err := svc.Create(context.Background(), &models.CreateArticleRequest{
		Title:      "No such category",
		Content:    "Body",
		CategoryID: &categoryID,
	}, author)

	require.NoError(t, err)
	assert.Nil(t, resp.Category)
}
