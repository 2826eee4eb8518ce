package models

import "time"

// ForumThread represents a discussion thread
type ForumThread struct {
	ID        int64
	Title     string
	AuthorID  int64
	Author    *User
	Category  *Category
	IsPinned  bool
	IsLocked  bool
	ViewCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ForumPost represents a single post inside a thread
type ForumPost struct {
	ID        int64
	Content   string
	AuthorID  int64
	Author    *User
	ThreadID  int64
	ParentID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ForumThreadResponse is the thread view used in listings
type ForumThreadResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Author    *UserResponse `json:"author"`
	Category  *Category     `json:"category"`
	IsPinned  bool          `json:"isPinned"`
	IsLocked  bool          `json:"isLocked"`
	ViewCount int           `json:"viewCount"`
	PostCount int64         `json:"postCount"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ForumThreadDetailResponse is the thread view with its posts
type ForumThreadDetailResponse struct {
	ID        int64               `json:"id"`
	Title     string              `json:"title"`
	Author    *UserResponse       `json:"author"`
	Category  *Category           `json:"category"`
	IsPinned  bool                `json:"isPinned"`
	IsLocked  bool                `json:"isLocked"`
	ViewCount int                 `json:"viewCount"`
	Posts     []*ForumPostResponse `json:"posts"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ForumPostResponse is the public view of a forum post
type ForumPostResponse struct {
	ID        int64         `json:"id"`
	Content   string        `json:"content"`
	Author    *UserResponse `json:"author"`
	ParentID  *int64        `json:"parentId"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreateThreadRequest is the request body for POST /api/forum/threads
type CreateThreadRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"categoryId,omitempty"`
}

// CreatePostRequest is the request body for POST /api/forum/threads/{id}/posts
type CreatePostRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// ToResponse converts a post to its public view
func (p *ForumPost) ToResponse() *ForumPostResponse {
	resp := &ForumPostResponse{
		ID:        p.ID,
		Content:   p.Content,
		ParentID:  p.ParentID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author != nil {
		resp.Author = p.Author.ToResponse()
	}
	return resp
}
