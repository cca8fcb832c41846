package dto

type CommentCreateDTO struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type CommentUpdateDTO struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type CommentDTO struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`

	// User
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}
