package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// threadSelect joins each thread with its author and optional category
const threadSelect = `
	SELECT t.id, t.title, t.is_pinned, t.is_locked, t.view_count, t.created_at, t.updated_at,
	       u.id, u.username, u.email, u.display_name, u.bio, u.avatar_url, u.role, u.created_at, u.updated_at,
	       c.id, c.name, c.slug, c.description, c.icon, c.sort_order
	FROM forum_threads t
	INNER JOIN users u ON u.id = t.author_id
	LEFT JOIN categories c ON c.id = t.category_id
`

// postSelect joins each post with its author
const postSelect = `
	SELECT p.id, p.content, p.thread_id, p.parent_id, p.created_at, p.updated_at,
	       u.id, u.username, u.email, u.display_name, u.bio, u.avatar_url, u.role, u.created_at, u.updated_at
	FROM forum_posts p
	INNER JOIN users u ON u.id = p.author_id
`

// forumRepository implements thread and post data access methods
type forumRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewForumRepository creates a new forum repository
func NewForumRepository(db *sql.DB, logger *zap.Logger) *forumRepository {
	return &forumRepository{
		db:     db,
		logger: logger,
	}
}

// ListThreads retrieves a page of threads, pinned first then newest,
// optionally filtered by category slug
func (r *forumRepository) ListThreads(ctx context.Context, offset, limit int, categorySlug string) ([]*models.ForumThread, error) {
	query := threadSelect
	args := []any{}

	if categorySlug != "" {
		query += ` WHERE c.slug = ?`
		args = append(args, categorySlug)
	}

	query += ` ORDER BY t.is_pinned DESC, t.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list threads", zap.Error(err))
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	threads := make([]*models.ForumThread, 0)
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			r.logger.Error("failed to scan thread", zap.Error(err))
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}

	return threads, nil
}

// CountThreads counts threads, optionally filtered by category slug
func (r *forumRepository) CountThreads(ctx context.Context, categorySlug string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM forum_threads t
		LEFT JOIN categories c ON c.id = t.category_id
	`
	args := []any{}

	if categorySlug != "" {
		query += ` WHERE c.slug = ?`
		args = append(args, categorySlug)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error("failed to count threads", zap.Error(err))
		return 0, fmt.Errorf("failed to count threads: %w", err)
	}

	return count, nil
}

// GetThreadByID retrieves a single thread by ID
func (r *forumRepository) GetThreadByID(ctx context.Context, id int64) (*models.ForumThread, error) {
	query := threadSelect + ` WHERE t.id = ?`

	thread, err := scanThread(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get thread by id", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get thread by id: %w", err)
	}

	return thread, nil
}

// CreateThread inserts a new thread together with its opening post
func (r *forumRepository) CreateThread(ctx context.Context, thread *models.ForumThread, openingPost string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO forum_threads (title, author_id, category_id)
		VALUES (?, ?, ?)
	`, thread.Title, thread.AuthorID, categoryID(thread.Category))
	if err != nil {
		r.logger.Error("failed to create thread", zap.Error(err))
		return fmt.Errorf("failed to create thread: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	thread.ID = id

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO forum_posts (content, author_id, thread_id)
		VALUES (?, ?, ?)
	`, openingPost, thread.AuthorID, id); err != nil {
		r.logger.Error("failed to create opening post", zap.Error(err))
		return fmt.Errorf("failed to create opening post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListPostsByThread retrieves a page of posts in a thread, oldest first
func (r *forumRepository) ListPostsByThread(ctx context.Context, threadID int64, offset, limit int) ([]*models.ForumPost, error) {
	query := postSelect + ` WHERE p.thread_id = ? ORDER BY p.created_at ASC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, threadID, limit, offset)
	if err != nil {
		r.logger.Error("failed to list posts", zap.Error(err), zap.Int64("thread_id", threadID))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.ForumPost, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.logger.Error("failed to scan post", zap.Error(err))
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// CountPostsByThread counts the posts in a thread
func (r *forumRepository) CountPostsByThread(ctx context.Context, threadID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM forum_posts WHERE thread_id = ?`, threadID).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count posts", zap.Error(err), zap.Int64("thread_id", threadID))
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// CreatePost inserts a new post into a thread
func (r *forumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO forum_posts (content, author_id, thread_id, parent_id)
		VALUES (?, ?, ?, ?)
	`, post.Content, post.AuthorID, post.ThreadID, post.ParentID)
	if err != nil {
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	post.ID = id

	return nil
}

// scanThread reads one joined thread row
func scanThread(row rowScanner) (*models.ForumThread, error) {
	thread := &models.ForumThread{Author: &models.User{}}
	var (
		catID          sql.NullInt64
		catName        sql.NullString
		catSlug        sql.NullString
		catDescription sql.NullString
		catIcon        sql.NullString
		catSortOrder   sql.NullInt64
	)

	err := row.Scan(
		&thread.ID, &thread.Title, &thread.IsPinned, &thread.IsLocked,
		&thread.ViewCount, &thread.CreatedAt, &thread.UpdatedAt,
		&thread.Author.ID, &thread.Author.Username, &thread.Author.Email,
		&thread.Author.DisplayName, &thread.Author.Bio, &thread.Author.AvatarURL,
		&thread.Author.Role, &thread.Author.CreatedAt, &thread.Author.UpdatedAt,
		&catID, &catName, &catSlug, &catDescription, &catIcon, &catSortOrder,
	)
	if err != nil {
		return nil, err
	}

	thread.AuthorID = thread.Author.ID
	if catID.Valid {
		thread.Category = &models.Category{
			ID:          catID.Int64,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDescription.String,
			Icon:        catIcon.String,
			SortOrder:   int(catSortOrder.Int64),
		}
	}

	return thread, nil
}

// scanPost reads one joined post row
func scanPost(row rowScanner) (*models.ForumPost, error) {
	post := &models.ForumPost{Author: &models.User{}}
	var parentID sql.NullInt64

	err := row.Scan(
		&post.ID, &post.Content, &post.ThreadID, &parentID, &post.CreatedAt, &post.UpdatedAt,
		&post.Author.ID, &post.Author.Username, &post.Author.Email,
		&post.Author.DisplayName, &post.Author.Bio, &post.Author.AvatarURL,
		&post.Author.Role, &post.Author.CreatedAt, &post.Author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.AuthorID = post.Author.ID
	if parentID.Valid {
		post.ParentID = &parentID.Int64
	}

	return post, nil
}
