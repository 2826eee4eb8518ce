package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// ArticleRepository is the interface that wraps methods for articles table data access
type ArticleRepository interface {
	ListPublished(ctx context.Context, offset, limit int, categorySlug string) ([]*models.Article, error)
	CountPublished(ctx context.Context, categorySlug string) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Search(ctx context.Context, q string, offset, limit int) ([]*models.Article, error)
	CountSearch(ctx context.Context, q string) (int64, error)
	ListPopular(ctx context.Context, limit int) ([]*models.Article, error)
	Create(ctx context.Context, article *models.Article, tagIDs []int64) error
}

// CategoryRepository is the interface that wraps methods for categories table data access
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Count(ctx context.Context) (int64, error)
}

// TagRepository is the interface that wraps methods for tags table data access
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Tag, error)
	ListByArticleID(ctx context.Context, articleID int64) ([]models.Tag, error)
}

// articleService implements article listing, lookup, search and creation
type articleService struct {
	articleRepo  ArticleRepository
	categoryRepo CategoryRepository
	tagRepo      TagRepository
	logger       *zap.Logger
}

// NewArticleService creates a new article service
func NewArticleService(articleRepo ArticleRepository, categoryRepo CategoryRepository, tagRepo TagRepository, logger *zap.Logger) *articleService {
	return &articleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		logger:       logger,
	}
}

// List retrieves a page of published articles, optionally filtered by category slug
func (s *articleService) List(ctx context.Context, page, size int, categorySlug string) (*models.PageResponse[*models.ArticleListResponse], error) {
	articles, err := s.articleRepo.ListPublished(ctx, page*size, size, categorySlug)
	if err != nil {
		return nil, err
	}

	total, err := s.articleRepo.CountPublished(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	content, err := s.toListResponses(ctx, articles)
	if err != nil {
		return nil, err
	}

	return models.NewPageResponse(content, page, size, total), nil
}

// GetBySlug retrieves a single article by slug
func (s *articleService) GetBySlug(ctx context.Context, slug string) (*models.ArticleResponse, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListByArticleID(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	article.Tags = tags

	return article.ToResponse(), nil
}

// Search retrieves a page of published articles matching the query
func (s *articleService) Search(ctx context.Context, q string, page, size int) (*models.PageResponse[*models.ArticleListResponse], error) {
	articles, err := s.articleRepo.Search(ctx, q, page*size, size)
	if err != nil {
		return nil, err
	}

	total, err := s.articleRepo.CountSearch(ctx, q)
	if err != nil {
		return nil, err
	}

	content, err := s.toListResponses(ctx, articles)
	if err != nil {
		return nil, err
	}

	return models.NewPageResponse(content, page, size, total), nil
}

// GetPopular retrieves the most viewed published articles
func (s *articleService) GetPopular(ctx context.Context, size int) ([]*models.ArticleListResponse, error) {
	articles, err := s.articleRepo.ListPopular(ctx, size)
	if err != nil {
		return nil, err
	}

	return s.toListResponses(ctx, articles)
}

// Create publishes a new article authored by the given user
func (s *articleService) Create(ctx context.Context, req *models.CreateArticleRequest, author *models.User) (*models.ArticleResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if req.Content == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	var category *models.Category
	if req.CategoryID != nil {
		c, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		category = c
	}

	tags, err := s.tagRepo.ListByIDs(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}
	tagIDs := make([]int64, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.ID
	}

	article := &models.Article{
		Title:    req.Title,
		Slug:     Slugify(req.Title),
		Summary:  req.Summary,
		Content:  req.Content,
		AuthorID: author.ID,
		Author:   author,
		Category: category,
		Status:   models.ArticleStatusPublished,
		Tags:     tags,
	}

	if err := s.articleRepo.Create(ctx, article, tagIDs); err != nil {
		return nil, err
	}

	return article.ToResponse(), nil
}

// CountPublished counts published articles for the stats endpoint
func (s *articleService) CountPublished(ctx context.Context) (int64, error) {
	return s.articleRepo.CountPublished(ctx, "")
}

// toListResponses converts articles to listing views, loading each article's tags
func (s *articleService) toListResponses(ctx context.Context, articles []*models.Article) ([]*models.ArticleListResponse, error) {
	content := make([]*models.ArticleListResponse, 0, len(articles))
	for _, article := range articles {
		tags, err := s.tagRepo.ListByArticleID(ctx, article.ID)
		if err != nil {
			return nil, err
		}
		article.Tags = tags
		content = append(content, article.ToListResponse())
	}
	return content, nil
}
