package dto

import "time"

type PostCreateDTO struct {
	Content     string     `json:"content" validate:"required,min=1,max=2000"`
	ImageURL    *string    `json:"image_url,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type PostUpdateDTO struct {
	Content  string  `json:"content" validate:"required,min=1,max=2000"`
	ImageURL *string `json:"image_url,omitempty"`
}

type PostDTO struct {
	// Post
	ID          uint64   `json:"id"`
	Content     string   `json:"content"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Hashtags    []string `json:"hashtags"`
	IsPublished bool     `json:"is_published"`
	ScheduledAt *string  `json:"scheduled_at,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`

	// 聚合计数
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`

	// User
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type PostListDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"has_more"`
}

type PostDetailDTO struct {
	Post     *PostDTO      `json:"post"`
	Comments []*CommentDTO `json:"comments"`
}
