package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// newsSelect joins each news item with its optional author
const newsSelect = `
	SELECT n.id, n.title, n.slug, n.summary, n.content, n.tag, n.tag_color, n.source_url,
	       n.is_published, n.published_at, n.created_at, n.updated_at,
	       u.id, u.username, u.email, u.display_name, u.bio, u.avatar_url, u.role, u.created_at, u.updated_at
	FROM news n
	LEFT JOIN users u ON u.id = n.author_id
`

// newsRepository implements the news data access methods
type newsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *sql.DB, logger *zap.Logger) *newsRepository {
	return &newsRepository{
		db:     db,
		logger: logger,
	}
}

// ListPublished retrieves a page of published news, newest first,
// optionally filtered by tag
func (r *newsRepository) ListPublished(ctx context.Context, offset, limit int, tag string) ([]*models.News, error) {
	query := newsSelect + ` WHERE n.is_published = TRUE`
	args := []any{}

	if tag != "" {
		query += ` AND n.tag = ?`
		args = append(args, tag)
	}

	query += ` ORDER BY n.published_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list news", zap.Error(err))
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	items := make([]*models.News, 0)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			r.logger.Error("failed to scan news", zap.Error(err))
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate news: %w", err)
	}

	return items, nil
}

// CountPublished counts published news, optionally filtered by tag
func (r *newsRepository) CountPublished(ctx context.Context, tag string) (int64, error) {
	query := `SELECT COUNT(*) FROM news WHERE is_published = TRUE`
	args := []any{}

	if tag != "" {
		query += ` AND tag = ?`
		args = append(args, tag)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error("failed to count news", zap.Error(err))
		return 0, fmt.Errorf("failed to count news: %w", err)
	}

	return count, nil
}

// GetBySlug retrieves a single news item by slug
func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	query := newsSelect + ` WHERE n.slug = ?`

	item, err := scanNews(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get news by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get news by slug: %w", err)
	}

	return item, nil
}

// Create inserts a new news item
func (r *newsRepository) Create(ctx context.Context, item *models.News) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO news (title, slug, summary, content, tag, tag_color, source_url, author_id, is_published, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.Title, item.Slug, item.Summary, item.Content, item.Tag, item.TagColor,
		item.SourceURL, item.AuthorID, item.IsPublished, item.PublishedAt)
	if err != nil {
		r.logger.Error("failed to create news", zap.Error(err))
		return fmt.Errorf("failed to create news: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id

	return nil
}

// scanNews reads one joined news row
func scanNews(row rowScanner) (*models.News, error) {
	item := &models.News{}
	var (
		authorID        sql.NullInt64
		authorUsername  sql.NullString
		authorEmail     sql.NullString
		authorDisplay   sql.NullString
		authorBio       sql.NullString
		authorAvatarURL sql.NullString
		authorRole      sql.NullString
		authorCreatedAt sql.NullTime
		authorUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&item.ID, &item.Title, &item.Slug, &item.Summary, &item.Content,
		&item.Tag, &item.TagColor, &item.SourceURL,
		&item.IsPublished, &item.PublishedAt, &item.CreatedAt, &item.UpdatedAt,
		&authorID, &authorUsername, &authorEmail, &authorDisplay, &authorBio,
		&authorAvatarURL, &authorRole, &authorCreatedAt, &authorUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		item.AuthorID = &authorID.Int64
		item.Author = &models.User{
			ID:          authorID.Int64,
			Username:    authorUsername.String,
			Email:       authorEmail.String,
			DisplayName: authorDisplay.String,
			Bio:         authorBio.String,
			AvatarURL:   authorAvatarURL.String,
			Role:        models.Role(authorRole.String),
			CreatedAt:   authorCreatedAt.Time,
			UpdatedAt:   authorUpdatedAt.Time,
		}
	}

	return item, nil
}
