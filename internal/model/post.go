package model

import (
	"time"
)

type Post struct {
	ID          uint64     `gorm:"primaryKey"`
	UserID      uint64     `gorm:"not null;index:idx_user_id" json:"user_id"`
	Content     string     `gorm:"type:varchar(2000);not null" json:"content"`
	ImageURL    *string    `gorm:"type:varchar(512);column:image_url" json:"image_url"`
	ScheduledAt *time.Time `gorm:"index:idx_scheduled_at" json:"scheduled_at"`
	// 不能带 default 标签，否则零值 false 在插入时会被数据库默认值覆盖
	IsPublished bool       `gorm:"type:tinyint(1);not null" json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) OwnerID() uint64 {
	return p.UserID
}
