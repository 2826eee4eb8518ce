package models

import "time"

// Article statuses
const (
	ArticleStatusPublished = "PUBLISHED"
	ArticleStatusDraft     = "DRAFT"
)

// Article represents a published or draft article
type Article struct {
	ID        int64
	Title     string
	Slug      string
	Summary   string
	Content   string
	AuthorID  int64
	Author    *User
	Category  *Category
	Status    string
	ViewCount int
	Tags      []Tag
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleResponse is the full article view returned for a single article
type ArticleResponse struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Slug      string           `json:"slug"`
	Summary   string           `json:"summary"`
	Content   string           `json:"content"`
	Author    *UserResponse    `json:"author"`
	Category  *Category        `json:"category"`
	Tags      []Tag            `json:"tags"`
	ViewCount int              `json:"viewCount"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ArticleListResponse is the compact article view used in listings
type ArticleListResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Summary   string        `json:"summary"`
	Author    *UserResponse `json:"author"`
	Category  *Category     `json:"category"`
	Tags      []Tag         `json:"tags"`
	ViewCount int           `json:"viewCount"`
	CreatedAt time.Time     `json:"createdAt"`
}

// CreateArticleRequest is the request body for POST /api/articles
type CreateArticleRequest struct {
	Title      string  `json:"title"`
	Summary    string  `json:"summary,omitempty"`
	Content    string  `json:"content"`
	CategoryID *int64  `json:"categoryId,omitempty"`
	TagIDs     []int64 `json:"tagIds,omitempty"`
}

// ToResponse converts an article to its full view
func (a *Article) ToResponse() *ArticleResponse {
	resp := &ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Summary:   a.Summary,
		Content:   a.Content,
		Category:  a.Category,
		Tags:      a.Tags,
		ViewCount: a.ViewCount,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Author != nil {
		resp.Author = a.Author.ToResponse()
	}
	return resp
}

// ToListResponse converts an article to its compact listing view
func (a *Article) ToListResponse() *ArticleListResponse {
	resp := &ArticleListResponse{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Summary:   a.Summary,
		Category:  a.Category,
		Tags:      a.Tags,
		ViewCount: a.ViewCount,
		CreatedAt: a.CreatedAt,
	}
	if a.Author != nil {
		resp.Author = a.Author.ToResponse()
	}
	return resp
}
