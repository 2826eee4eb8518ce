package services

import (
	"context"

	"github.com/devhub/backend/internal/models"
)

// UserCounter exposes the user count for the stats endpoint
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ArticleCounter exposes the published article count for the stats endpoint
type ArticleCounter interface {
	CountPublished(ctx context.Context, categorySlug string) (int64, error)
}

// ThreadCounter exposes the thread count for the stats endpoint
type ThreadCounter interface {
	CountThreads(ctx context.Context, categorySlug string) (int64, error)
}

// NewsCounter exposes the published news count for the stats endpoint
type NewsCounter interface {
	CountPublished(ctx context.Context, tag string) (int64, error)
}

// generalService implements the category, tag and stats endpoints
type generalService struct {
	categoryRepo CategoryRepository
	tagRepo      TagRepository
	users        UserCounter
	articles     ArticleCounter
	threads      ThreadCounter
	news         NewsCounter
}

// NewGeneralService creates a new general service
func NewGeneralService(
	categoryRepo CategoryRepository,
	tagRepo TagRepository,
	users UserCounter,
	articles ArticleCounter,
	threads ThreadCounter,
	news NewsCounter,
) *generalService {
	return &generalService{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		users:        users,
		articles:     articles,
		threads:      threads,
		news:         news,
	}
}

// ListCategories retrieves all categories in sort order
func (s *generalService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// ListTags retrieves all tags
func (s *generalService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// GetStats aggregates the site-wide counters
func (s *generalService) GetStats(ctx context.Context) (*models.StatsResponse, error) {
	articleCount, err := s.articles.CountPublished(ctx, "")
	if err != nil {
		return nil, err
	}

	categoryCount, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	threadCount, err := s.threads.CountThreads(ctx, "")
	if err != nil {
		return nil, err
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	newsCount, err := s.news.CountPublished(ctx, "")
	if err != nil {
		return nil, err
	}

	return &models.StatsResponse{
		ArticleCount:  articleCount,
		CategoryCount: categoryCount,
		ThreadCount:   threadCount,
		UserCount:     userCount,
		NewsCount:     newsCount,
	}, nil
}
