package models

import "time"

// Default values applied when a news item is created without them
const (
	NewsDefaultTag      = "General"
	NewsDefaultTagColor = "#7F52FF"
)

// News represents a news item
type News struct {
	ID          int64
	Title       string
	Slug        string
	Summary     string
	Content     string
	Tag         string
	TagColor    string
	SourceURL   string
	AuthorID    *int64
	Author      *User
	IsPublished bool
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewsResponse is the public view of a news item
type NewsResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Summary     string        `json:"summary"`
	Content     string        `json:"content"`
	Tag         string        `json:"tag"`
	TagColor    string        `json:"tagColor"`
	SourceURL   string        `json:"sourceUrl"`
	Author      *UserResponse `json:"author"`
	PublishedAt time.Time     `json:"publishedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CreateNewsRequest is the request body for POST /api/news
type CreateNewsRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	Content   string `json:"content,omitempty"`
	Tag       string `json:"tag,omitempty"`
	TagColor  string `json:"tagColor,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// ToResponse converts a news item to its public view
func (n *News) ToResponse() *NewsResponse {
	resp := &NewsResponse{
		ID:          n.ID,
		Title:       n.Title,
		Slug:        n.Slug,
		Summary:     n.Summary,
		Content:     n.Content,
		Tag:         n.Tag,
		TagColor:    n.TagColor,
		SourceURL:   n.SourceURL,
		PublishedAt: n.PublishedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Author != nil {
		resp.Author = n.Author.ToResponse()
	}
	return resp
}
