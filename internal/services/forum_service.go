package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// ForumRepository is the interface that wraps methods for forum table data access
type ForumRepository interface {
	ListThreads(ctx context.Context, offset, limit int, categorySlug string) ([]*models.ForumThread, error)
	CountThreads(ctx context.Context, categorySlug string) (int64, error)
	GetThreadByID(ctx context.Context, id int64) (*models.ForumThread, error)
	CreateThread(ctx context.Context, thread *models.ForumThread, openingPost string) error
	ListPostsByThread(ctx context.Context, threadID int64, offset, limit int) ([]*models.ForumPost, error)
	CountPostsByThread(ctx context.Context, threadID int64) (int64, error)
	CreatePost(ctx context.Context, post *models.ForumPost) error
}

// forumService implements thread and post listing and creation
type forumService struct {
	forumRepo    ForumRepository
	categoryRepo CategoryRepository
	logger       *zap.Logger
}

// NewForumService creates a new forum service
func NewForumService(forumRepo ForumRepository, categoryRepo CategoryRepository, logger *zap.Logger) *forumService {
	return &forumService{
		forumRepo:    forumRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListThreads retrieves a page of threads with their post counts
func (s *forumService) ListThreads(ctx context.Context, page, size int, categorySlug string) (*models.PageResponse[*models.ForumThreadResponse], error) {
	threads, err := s.forumRepo.ListThreads(ctx, page*size, size, categorySlug)
	if err != nil {
		return nil, err
	}

	total, err := s.forumRepo.CountThreads(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	content := make([]*models.ForumThreadResponse, 0, len(threads))
	for _, thread := range threads {
		postCount, err := s.forumRepo.CountPostsByThread(ctx, thread.ID)
		if err != nil {
			return nil, err
		}
		content = append(content, s.toThreadResponse(thread, postCount))
	}

	return models.NewPageResponse(content, page, size, total), nil
}

// GetThread retrieves a thread with a page of its posts, oldest first
func (s *forumService) GetThread(ctx context.Context, id int64, page, size int) (*models.ForumThreadDetailResponse, error) {
	thread, err := s.forumRepo.GetThreadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.forumRepo.ListPostsByThread(ctx, id, page*size, size)
	if err != nil {
		return nil, err
	}

	postResponses := make([]*models.ForumPostResponse, 0, len(posts))
	for _, post := range posts {
		postResponses = append(postResponses, post.ToResponse())
	}

	detail := &models.ForumThreadDetailResponse{
		ID:        thread.ID,
		Title:     thread.Title,
		Category:  thread.Category,
		IsPinned:  thread.IsPinned,
		IsLocked:  thread.IsLocked,
		ViewCount: thread.ViewCount,
		Posts:     postResponses,
		CreatedAt: thread.CreatedAt,
	}
	if thread.Author != nil {
		detail.Author = thread.Author.ToResponse()
	}

	return detail, nil
}

// CreateThread creates a new thread with its opening post
func (s *forumService) CreateThread(ctx context.Context, req *models.CreateThreadRequest, author *models.User) (*models.ForumThreadResponse, error) {
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

	thread := &models.ForumThread{
		Title:    req.Title,
		AuthorID: author.ID,
		Author:   author,
		Category: category,
	}

	if err := s.forumRepo.CreateThread(ctx, thread, req.Content); err != nil {
		return nil, err
	}

	// The opening post is the thread's first post
	return s.toThreadResponse(thread, 1), nil
}

// CreatePost adds a post to a thread. Posting to a locked thread fails
// with models.ErrThreadLocked.
func (s *forumService) CreatePost(ctx context.Context, threadID int64, req *models.CreatePostRequest, author *models.User) (*models.ForumPostResponse, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}

	thread, err := s.forumRepo.GetThreadByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	if thread.IsLocked {
		return nil, models.ErrThreadLocked
	}

	post := &models.ForumPost{
		Content:  req.Content,
		AuthorID: author.ID,
		Author:   author,
		ThreadID: threadID,
		ParentID: req.ParentID,
	}

	if err := s.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	return post.ToResponse(), nil
}

// CountThreads counts all threads for the stats endpoint
func (s *forumService) CountThreads(ctx context.Context) (int64, error) {
	return s.forumRepo.CountThreads(ctx, "")
}

// toThreadResponse converts a thread to its listing view
func (s *forumService) toThreadResponse(thread *models.ForumThread, postCount int64) *models.ForumThreadResponse {
	resp := &models.ForumThreadResponse{
		ID:        thread.ID,
		Title:     thread.Title,
		Category:  thread.Category,
		IsPinned:  thread.IsPinned,
		IsLocked:  thread.IsLocked,
		ViewCount: thread.ViewCount,
		PostCount: postCount,
		CreatedAt: thread.CreatedAt,
		UpdatedAt: thread.UpdatedAt,
	}
	if thread.Author != nil {
		resp.Author = thread.Author.ToResponse()
	}
	return resp
}
