package model

import "time"

// User 用户模型
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName  string    `gorm:"size:255;not null;uniqueIndex;comment:用户名" json:"user_name"`
	FullName  string    `gorm:"size:255;not null;comment:昵称" json:"full_name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"-"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"` // json:"-" 序列化时忽略密码
	Avatar    *string   `gorm:"size:500;comment:用户头像" json:"avatar"`
	Bio       string    `gorm:"type:text;comment:个人简介" json:"bio"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
