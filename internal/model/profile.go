package model

import "time"

type Profile struct {
	UserID    uint64  `gorm:"primaryKey"`
	Bio       *string `gorm:"type:varchar(500);default:''"`
	AvatarURL string  `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) OwnerID() uint64 {
	return p.UserID
}
