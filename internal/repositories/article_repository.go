package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// articleSelect joins each article with its author and optional category.
// The author's password hash is deliberately never selected here.
const articleSelect = `
	SELECT a.id, a.title, a.slug, a.summary, a.content, a.status, a.view_count, a.created_at, a.updated_at,
	       u.id, u.username, u.email, u.display_name, u.bio, u.avatar_url, u.role, u.created_at, u.updated_at,
	       c.id, c.name, c.slug, c.description, c.icon, c.sort_order
	FROM articles a
	INNER JOIN users u ON u.id = a.author_id
	LEFT JOIN categories c ON c.id = a.category_id
`

// articleRepository implements the article data access methods
type articleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sql.DB, logger *zap.Logger) *articleRepository {
	return &articleRepository{
		db:     db,
		logger: logger,
	}
}

// ListPublished retrieves a page of published articles, newest first,
// optionally filtered by category slug
func (r *articleRepository) ListPublished(ctx context.Context, offset, limit int, categorySlug string) ([]*models.Article, error) {
	query := articleSelect + ` WHERE a.status = ?`
	args := []any{models.ArticleStatusPublished}

	if categorySlug != "" {
		query += ` AND c.slug = ?`
		args = append(args, categorySlug)
	}

	query += ` ORDER BY a.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return r.queryArticles(ctx, query, args...)
}

// CountPublished counts published articles, optionally filtered by category slug
func (r *articleRepository) CountPublished(ctx context.Context, categorySlug string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM articles a
		LEFT JOIN categories c ON c.id = a.category_id
		WHERE a.status = ?
	`
	args := []any{models.ArticleStatusPublished}

	if categorySlug != "" {
		query += ` AND c.slug = ?`
		args = append(args, categorySlug)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error("failed to count articles", zap.Error(err))
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}

// GetBySlug retrieves a single article by slug
func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := articleSelect + ` WHERE a.slug = ?`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get article by slug", zap.Error(err), zap.String("slug", slug))
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}

	return article, nil
}

// Search retrieves a page of published articles whose title, summary or
// content matches the query
func (r *articleRepository) Search(ctx context.Context, q string, offset, limit int) ([]*models.Article, error) {
	query := articleSelect + `
		WHERE a.status = ? AND (a.title LIKE ? OR a.summary LIKE ? OR a.content LIKE ?)
		ORDER BY a.created_at DESC LIMIT ? OFFSET ?
	`
	pattern := "%" + q + "%"

	return r.queryArticles(ctx, query, models.ArticleStatusPublished, pattern, pattern, pattern, limit, offset)
}

// CountSearch counts published articles matching the search query
func (r *articleRepository) CountSearch(ctx context.Context, q string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM articles a
		WHERE a.status = ? AND (a.title LIKE ? OR a.summary LIKE ? OR a.content LIKE ?)
	`
	pattern := "%" + q + "%"

	var count int64
	if err := r.db.QueryRowContext(ctx, query, models.ArticleStatusPublished, pattern, pattern, pattern).Scan(&count); err != nil {
		r.logger.Error("failed to count search results", zap.Error(err))
		return 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return count, nil
}

// ListPopular retrieves the most viewed published articles
func (r *articleRepository) ListPopular(ctx context.Context, limit int) ([]*models.Article, error) {
	query := articleSelect + ` WHERE a.status = ? ORDER BY a.view_count DESC LIMIT ?`

	return r.queryArticles(ctx, query, models.ArticleStatusPublished, limit)
}

// Create inserts a new article and its tag links in one transaction
func (r *articleRepository) Create(ctx context.Context, article *models.Article, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO articles (title, slug, summary, content, author_id, category_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, article.Title, article.Slug, article.Summary, article.Content,
		article.AuthorID, categoryID(article.Category), article.Status)
	if err != nil {
		r.logger.Error("failed to create article", zap.Error(err))
		return fmt.Errorf("failed to create article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	article.ID = id

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO article_tags (article_id, tag_id) VALUES (?, ?)
		`, id, tagID); err != nil {
			r.logger.Error("failed to link article tag", zap.Error(err), zap.Int64("tag_id", tagID))
			return fmt.Errorf("failed to link article tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountByStatus counts articles with the given status
func (r *articleRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE status = ?`, status).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count articles by status", zap.Error(err))
		return 0, fmt.Errorf("failed to count articles by status: %w", err)
	}

	return count, nil
}

// queryArticles runs an articleSelect query and scans all rows
func (r *articleRepository) queryArticles(ctx context.Context, query string, args ...any) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query articles", zap.Error(err))
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			r.logger.Error("failed to scan article", zap.Error(err))
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanArticle reads one joined article row
func scanArticle(row rowScanner) (*models.Article, error) {
	article := &models.Article{Author: &models.User{}}
	var (
		catID          sql.NullInt64
		catName        sql.NullString
		catSlug        sql.NullString
		catDescription sql.NullString
		catIcon        sql.NullString
		catSortOrder   sql.NullInt64
	)

	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Summary, &article.Content,
		&article.Status, &article.ViewCount, &article.CreatedAt, &article.UpdatedAt,
		&article.Author.ID, &article.Author.Username, &article.Author.Email,
		&article.Author.DisplayName, &article.Author.Bio, &article.Author.AvatarURL,
		&article.Author.Role, &article.Author.CreatedAt, &article.Author.UpdatedAt,
		&catID, &catName, &catSlug, &catDescription, &catIcon, &catSortOrder,
	)
	if err != nil {
		return nil, err
	}

	article.AuthorID = article.Author.ID
	if catID.Valid {
		article.Category = &models.Category{
			ID:          catID.Int64,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDescription.String,
			Icon:        catIcon.String,
			SortOrder:   int(catSortOrder.Int64),
		}
	}

	return article, nil
}

// categoryID extracts a nullable category foreign key
func categoryID(category *models.Category) any {
	if category == nil {
		return nil
	}
	return category.ID
}
