package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	Username  string `gorm:"type:varchar(50);not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile Profile `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// OwnerID 用户资源归属于自己
func (u *User) OwnerID() uint64 {
	return u.ID
}
