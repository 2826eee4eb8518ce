package services

import (
	"context"
	"fmt"
	"time"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// NewsRepository is the interface that wraps methods for news table data access
type NewsRepository interface {
	ListPublished(ctx context.Context, offset, limit int, tag string) ([]*models.News, error)
	CountPublished(ctx context.Context, tag string) (int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.News, error)
	Create(ctx context.Context, item *models.News) error
}

// newsService implements news listing, lookup and creation
type newsService struct {
	newsRepo NewsRepository
	logger   *zap.Logger
}

// NewNewsService creates a new news service
func NewNewsService(newsRepo NewsRepository, logger *zap.Logger) *newsService {
	return &newsService{
		newsRepo: newsRepo,
		logger:   logger,
	}
}

// List retrieves a page of published news, optionally filtered by tag
func (s *newsService) List(ctx context.Context, page, size int, tag string) (*models.PageResponse[*models.NewsResponse], error) {
	items, err := s.newsRepo.ListPublished(ctx, page*size, size, tag)
	if err != nil {
		return nil, err
	}

	total, err := s.newsRepo.CountPublished(ctx, tag)
	if err != nil {
		return nil, err
	}

	content := make([]*models.NewsResponse, 0, len(items))
	for _, item := range items {
		content = append(content, item.ToResponse())
	}

	return models.NewPageResponse(content, page, size, total), nil
}

// GetBySlug retrieves a single news item by slug
func (s *newsService) GetBySlug(ctx context.Context, slug string) (*models.NewsResponse, error) {
	item, err := s.newsRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return item.ToResponse(), nil
}

// Create publishes a news item; author may be nil when the caller is anonymous
func (s *newsService) Create(ctx context.Context, req *models.CreateNewsRequest, author *models.User) (*models.NewsResponse, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	tag := req.Tag
	if tag == "" {
		tag = models.NewsDefaultTag
	}
	tagColor := req.TagColor
	if tagColor == "" {
		tagColor = models.NewsDefaultTagColor
	}

	item := &models.News{
		Title:       req.Title,
		Slug:        Slugify(req.Title),
		Summary:     req.Summary,
		Content:     req.Content,
		Tag:         tag,
		TagColor:    tagColor,
		SourceURL:   req.SourceURL,
		IsPublished: true,
		PublishedAt: time.Now(),
	}
	if author != nil {
		item.AuthorID = &author.ID
		item.Author = author
	}

	if err := s.newsRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item.ToResponse(), nil
}

// CountPublished counts published news for the stats endpoint
func (s *newsService) CountPublished(ctx context.Context) (int64, error) {
	return s.newsRepo.CountPublished(ctx, "")
}
