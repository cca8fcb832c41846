package dto

type UserDTO struct {
	UserID         uint64  `json:"user_id"`
	Email          string  `json:"email,omitempty"`
	Username       string  `json:"username"`
	Bio            *string `json:"bio,omitempty"`
	AvatarURL      string  `json:"avatar_url"`
	FollowerCount  int64   `json:"follower_count"`
	FollowingCount int64   `json:"following_count"`
	CreatedAt      string  `json:"created_at"`
}

type ProfileUpdateDTO struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
