package dto

import "vidtube/internal/pagination"

// RegisterRequest 注册请求
type RegisterRequest struct {
	UserName string  `json:"user_name" validate:"required,alphanum,min=3,max=30"`
	FullName string  `json:"full_name" validate:"notblank,max=100"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=255"`
	Avatar   *string `json:"avatar" validate:"omitempty,url,max=500"`
	Bio      string  `json:"bio" validate:"max=500"`
}

// OwnerProfile 嵌套在读模型中的作者公开资料
type OwnerProfile struct {
	ID       int64   `json:"id"`
	UserName string  `json:"user_name"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

// UserInfo 用户公开信息（不含邮箱、密码）
type UserInfo struct {
	ID       int64   `json:"id"`
	UserName string  `json:"user_name"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
	Bio      string  `json:"bio"`
}

// ChannelProfile 频道主页信息
type ChannelProfile struct {
	UserInfo
	SubscribersCount  int64 `json:"subscribers_count"`
	SubscribedToCount int64 `json:"subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

// UserListData 用户列表数据（订阅者 / 已订阅频道）
type UserListData struct {
	Users      []UserInfo      `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}
