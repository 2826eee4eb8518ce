package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/devhub/backend/internal/models"
	"go.uber.org/zap"
)

// tagRepository implements the tag data access methods
type tagRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *sql.DB, logger *zap.Logger) *tagRepository {
	return &tagRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves all tags
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT id, name, slug FROM tags ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListByIDs retrieves the tags with the given IDs
func (r *tagRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(`SELECT id, name, slug FROM tags WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list tags by ids", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags by ids: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListByArticleID retrieves the tags attached to an article
func (r *tagRepository) ListByArticleID(ctx context.Context, articleID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		INNER JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = ?
		ORDER BY t.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		r.logger.Error("failed to list tags by article id", zap.Error(err), zap.Int64("article_id", articleID))
		return nil, fmt.Errorf("failed to list tags by article id: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// scanTags reads tag rows into a slice
func scanTags(rows *sql.Rows) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}
